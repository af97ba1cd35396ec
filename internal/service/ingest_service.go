package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/specification"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/preprocess"
	"rag-chat-be/pkg/utils"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

// Chunking bounds: ~1500 chars keeps a chunk well under the embedding
// model's context window, the overlap preserves sentence continuity at
// chunk boundaries.
const (
	ingestChunkSize    = 1500
	ingestChunkOverlap = 200
)

type IIngestService interface {
	// IngestPDF replaces the stored chunks of the PDF's document and
	// publishes one embed message per new chunk.
	IngestPDF(ctx context.Context, path string) (int, error)
}

type ingestService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	preprocessor     *preprocess.TextPreprocessor
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	preprocessor *preprocess.TextPreprocessor,
) IIngestService {
	return &ingestService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		preprocessor:     preprocessor,
	}
}

func (s *ingestService) IngestPDF(ctx context.Context, path string) (int, error) {
	documentName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	chunks, err := s.parsePDF(path, documentName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no text extracted from %s", path)
	}

	if err := s.replaceDocument(ctx, documentName, chunks); err != nil {
		return 0, err
	}

	for _, chunk := range chunks {
		payload, err := json.Marshal(dto.EmbedChunkMessage{KnowledgeId: chunk.Id})
		if err != nil {
			return 0, err
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			return 0, fmt.Errorf("failed to publish embed message for chunk %s: %w", chunk.Id, err)
		}
	}

	return len(chunks), nil
}

// parsePDF extracts page text and splits it into outline-addressed chunks.
// The library exposes no table of contents with page mapping, so every
// chunk lands on outline level 1 with a running sublevel preserving
// document order, titled by its first line.
func (s *ingestService) parsePDF(path, documentName string) ([]*entity.KnowledgeChunk, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var chunks []*entity.KnowledgeChunk
	sublevel := 1

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageNum, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		for _, part := range utils.SplitText(text, ingestChunkSize, ingestChunkOverlap) {
			if part == "" {
				continue
			}
			chunks = append(chunks, &entity.KnowledgeChunk{
				Id:              uuid.New(),
				DocumentName:    documentName,
				Title:           utils.FirstLine(part),
				Page:            pageNum,
				RevisedText:     s.preprocessor.DeleteSensitiveData(part),
				OutlineLevel:    1,
				OutlineSublevel: sublevel,
				CreatedAt:       time.Now(),
			})
			sublevel++
		}
	}

	return chunks, nil
}

func (s *ingestService) replaceDocument(ctx context.Context, documentName string, chunks []*entity.KnowledgeChunk) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	old, err := uow.KnowledgeRepository().FindAll(ctx, specification.ByDocumentName{DocumentName: documentName})
	if err != nil {
		return fmt.Errorf("failed to list existing chunks: %w", err)
	}
	staleIds := make([]uuid.UUID, 0, len(old))
	for _, c := range old {
		staleIds = append(staleIds, c.Id)
	}

	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if len(staleIds) > 0 {
		if err := uow.ChunkEmbeddingRepository().DeleteByKnowledgeIds(ctx, staleIds); err != nil {
			return fmt.Errorf("failed to delete stale embeddings: %w", err)
		}
		if err := uow.KnowledgeRepository().DeleteByDocumentName(ctx, documentName); err != nil {
			return fmt.Errorf("failed to delete stale chunks: %w", err)
		}
	}

	if err := uow.KnowledgeRepository().CreateBulk(ctx, chunks); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit document replacement: %w", err)
	}
	return nil
}
