package implementation

import (
	"context"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/mapper"
	"rag-chat-be/internal/model"
	"rag-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChunkEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkEmbeddingMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkEmbeddingMapper(),
	}
}

func (r *ChunkEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ChunkEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChunkEmbeddingRepositoryImpl) AllRefs(ctx context.Context) ([]*entity.EmbeddingRef, error) {
	var models []*model.ChunkEmbedding
	err := r.db.WithContext(ctx).
		Select("knowledge_id", "embedding").
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	refs := make([]*entity.EmbeddingRef, len(models))
	for i, m := range models {
		refs[i] = &entity.EmbeddingRef{
			KnowledgeId: m.KnowledgeId,
			Embedding:   m.Embedding.Slice(),
		}
	}
	return refs, nil
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByKnowledgeId(ctx context.Context, knowledgeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("knowledge_id = ?", knowledgeId).Delete(&model.ChunkEmbedding{}).Error
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByKnowledgeIds(ctx context.Context, knowledgeIds []uuid.UUID) error {
	if len(knowledgeIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("knowledge_id IN ?", knowledgeIds).Delete(&model.ChunkEmbedding{}).Error
}

func (r *ChunkEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ChunkEmbedding{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
