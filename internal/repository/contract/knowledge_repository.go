package contract

import (
	"context"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, chunk *entity.KnowledgeChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.KnowledgeChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	// FindSection returns every chunk sharing the given document and outline
	// level, ordered by sublevel.
	FindSection(ctx context.Context, documentName string, outlineLevel int) ([]*entity.KnowledgeChunk, error)
	DistinctDocuments(ctx context.Context) ([]string, error)
	DeleteByDocumentName(ctx context.Context, documentName string) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
