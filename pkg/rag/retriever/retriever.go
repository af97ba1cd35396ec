package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/preprocess"
)

// Result is one scored retrieval hit. Content holds either the single
// chunk's text or the concatenated full section when expansion fit the
// token ceiling.
type Result struct {
	KnowledgeId     string
	DocumentName    string
	Title           string
	Page            int
	Content         string
	Similarity      float64
	OutlineLevel    int
	OutlineSublevel int
}

type Options struct {
	TopK int
	// ReturnFullTextContent expands each hit to the full text of its
	// document section when the section fits MaxContextLength tokens.
	ReturnFullTextContent bool
	MaxContextLength      int
}

// Retriever scores the query against every stored chunk embedding with a
// linear cosine scan. No ANN index; the corpus this system targets stays
// small enough that a full scan per query is cheaper than maintaining one.
type Retriever struct {
	knowledge    contract.KnowledgeRepository
	embeddings   contract.ChunkEmbeddingRepository
	embedder     embedding.EmbeddingProvider
	preprocessor *preprocess.TextPreprocessor
	tokenizer    llm.Tokenizer
	opts         Options
}

func NewRetriever(
	knowledge contract.KnowledgeRepository,
	embeddings contract.ChunkEmbeddingRepository,
	embedder embedding.EmbeddingProvider,
	preprocessor *preprocess.TextPreprocessor,
	tokenizer llm.Tokenizer,
	opts Options,
) *Retriever {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	return &Retriever{
		knowledge:    knowledge,
		embeddings:   embeddings,
		embedder:     embedder,
		preprocessor: preprocessor,
		tokenizer:    tokenizer,
		opts:         opts,
	}
}

type scoredRef struct {
	ref        *entity.EmbeddingRef
	similarity float64
}

// Retrieve returns the top-k most similar chunks for the query, in
// descending similarity order. An empty corpus yields an empty slice, not
// an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]*Result, error) {
	cleaned := r.preprocessor.DeleteSensitiveData(query)
	tokens := r.preprocessor.Preprocess(cleaned, true)
	normalized := strings.Join(tokens, " ")
	if normalized == "" {
		normalized = strings.ToLower(strings.TrimSpace(cleaned))
	}

	resp, err := r.embedder.Generate(normalized, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	queryVector := resp.Embedding.Values

	refs, err := r.embeddings.AllRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunk embeddings: %w", err)
	}
	if len(refs) == 0 {
		return []*Result{}, nil
	}

	scored := make([]scoredRef, 0, len(refs))
	for _, ref := range refs {
		scored = append(scored, scoredRef{
			ref:        ref,
			similarity: CosineSimilarity(queryVector, ref.Embedding),
		})
	}

	// Stable keeps store insertion order for ties, so repeated calls over
	// the same corpus return the same ranking.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})

	limit := r.opts.TopK
	if limit > len(scored) {
		limit = len(scored)
	}

	results := make([]*Result, 0, limit)
	for _, s := range scored[:limit] {
		chunk, err := r.knowledge.FindByID(ctx, s.ref.KnowledgeId)
		if err != nil {
			return nil, fmt.Errorf("failed to load chunk %s: %w", s.ref.KnowledgeId, err)
		}
		if chunk == nil {
			continue
		}

		content := chunk.RevisedText
		if r.opts.ReturnFullTextContent {
			content, err = r.expandSection(ctx, chunk)
			if err != nil {
				return nil, err
			}
		}

		results = append(results, &Result{
			KnowledgeId:     chunk.Id.String(),
			DocumentName:    chunk.DocumentName,
			Title:           chunk.Title,
			Page:            chunk.Page,
			Content:         content,
			Similarity:      s.similarity,
			OutlineLevel:    chunk.OutlineLevel,
			OutlineSublevel: chunk.OutlineSublevel,
		})
	}
	return results, nil
}

// expandSection concatenates every chunk of the hit's document section in
// sublevel order. If the concatenation blows the token ceiling the single
// chunk's text is returned instead, so the choice is reproducible for a
// fixed corpus.
func (r *Retriever) expandSection(ctx context.Context, chunk *entity.KnowledgeChunk) (string, error) {
	section, err := r.knowledge.FindSection(ctx, chunk.DocumentName, chunk.OutlineLevel)
	if err != nil {
		return "", fmt.Errorf("failed to load section %s/%d: %w", chunk.DocumentName, chunk.OutlineLevel, err)
	}
	if len(section) == 0 {
		return chunk.RevisedText, nil
	}

	parts := make([]string, 0, len(section))
	for _, c := range section {
		parts = append(parts, c.RevisedText)
	}
	full := strings.Join(parts, " ")

	if r.opts.MaxContextLength > 0 && r.tokenizer.Count(full) > r.opts.MaxContextLength {
		return chunk.RevisedText, nil
	}
	return full, nil
}

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. Zero-length or mismatched vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
