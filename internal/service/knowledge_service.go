package service

import (
	"context"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/repository/contract"
)

type IKnowledgeService interface {
	ListDocuments(ctx context.Context) (*dto.DocumentListResponse, error)
	Keywords() *dto.KeywordsResponse
}

type knowledgeService struct {
	knowledge contract.KnowledgeRepository
	keywords  IKeywordService
}

func NewKnowledgeService(knowledge contract.KnowledgeRepository, keywords IKeywordService) IKnowledgeService {
	return &knowledgeService{
		knowledge: knowledge,
		keywords:  keywords,
	}
}

func (s *knowledgeService) ListDocuments(ctx context.Context) (*dto.DocumentListResponse, error) {
	documents, err := s.knowledge.DistinctDocuments(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentListResponse{
		Documents: documents,
		Count:     len(documents),
	}, nil
}

func (s *knowledgeService) Keywords() *dto.KeywordsResponse {
	set := s.keywords.KeywordSet()
	return &dto.KeywordsResponse{
		Count:  len(set),
		Sample: SampleKeywords(set, 50),
	}
}
