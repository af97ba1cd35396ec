package contract

import (
	"context"

	"rag-chat-be/internal/entity"

	"github.com/google/uuid"
)

type ChunkEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ChunkEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error
	// AllRefs loads every (knowledge id, vector) pair for in-memory scoring.
	AllRefs(ctx context.Context) ([]*entity.EmbeddingRef, error)
	DeleteByKnowledgeId(ctx context.Context, knowledgeId uuid.UUID) error
	DeleteByKnowledgeIds(ctx context.Context, knowledgeIds []uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
