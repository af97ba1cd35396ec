package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/preprocess"
	"rag-chat-be/pkg/rag/gate"
)

// keywordsPerChunk bounds how much of each chunk's vocabulary enters the
// gate's keyword set.
const keywordsPerChunk = 10

type IKeywordService interface {
	// KeywordSet returns the current corpus keyword set.
	KeywordSet() map[string]struct{}
	// Rebuild recomputes the set from every stored chunk.
	Rebuild(ctx context.Context) error
}

type keywordService struct {
	mu           sync.RWMutex
	keywords     map[string]struct{}
	knowledge    contract.KnowledgeRepository
	preprocessor *preprocess.TextPreprocessor
}

func NewKeywordService(knowledge contract.KnowledgeRepository, preprocessor *preprocess.TextPreprocessor) IKeywordService {
	return &keywordService{
		keywords:     make(map[string]struct{}),
		knowledge:    knowledge,
		preprocessor: preprocessor,
	}
}

func (s *keywordService) KeywordSet() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keywords
}

func (s *keywordService) Rebuild(ctx context.Context) error {
	chunks, err := s.knowledge.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chunks for keyword rebuild: %w", err)
	}

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.RevisedText)
	}
	keywords := gate.BuildKeywordSet(texts, s.preprocessor, keywordsPerChunk)

	s.mu.Lock()
	s.keywords = keywords
	s.mu.Unlock()
	return nil
}

// SampleKeywords returns up to n keywords in sorted order, for the
// knowledgebase inspection endpoint.
func SampleKeywords(keywords map[string]struct{}, n int) []string {
	sample := make([]string, 0, len(keywords))
	for k := range keywords {
		sample = append(sample, k)
	}
	sort.Strings(sample)
	if len(sample) > n {
		sample = sample[:n]
	}
	return sample
}
