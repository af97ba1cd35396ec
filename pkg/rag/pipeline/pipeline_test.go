package pipeline

import (
	"context"
	"strings"
	"testing"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/specification"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/preprocess"
	"rag-chat-be/pkg/rag/answer"
	"rag-chat-be/pkg/rag/history"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/rag/stream"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "11111111-1111-4111-8111-111111111111"

type memKnowledgeRepo struct {
	chunks []*entity.KnowledgeChunk
}

func (r *memKnowledgeRepo) Create(ctx context.Context, c *entity.KnowledgeChunk) error { return nil }
func (r *memKnowledgeRepo) CreateBulk(ctx context.Context, c []*entity.KnowledgeChunk) error {
	return nil
}

func (r *memKnowledgeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.KnowledgeChunk, error) {
	for _, c := range r.chunks {
		if c.Id == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memKnowledgeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	return r.chunks, nil
}

func (r *memKnowledgeRepo) FindSection(ctx context.Context, documentName string, outlineLevel int) ([]*entity.KnowledgeChunk, error) {
	var out []*entity.KnowledgeChunk
	for _, c := range r.chunks {
		if c.DocumentName == documentName && c.OutlineLevel == outlineLevel {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memKnowledgeRepo) DistinctDocuments(ctx context.Context) ([]string, error) { return nil, nil }
func (r *memKnowledgeRepo) DeleteByDocumentName(ctx context.Context, documentName string) error {
	return nil
}

func (r *memKnowledgeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.chunks)), nil
}

type memEmbeddingRepo struct {
	refs []*entity.EmbeddingRef
}

func (r *memEmbeddingRepo) Create(ctx context.Context, e *entity.ChunkEmbedding) error { return nil }
func (r *memEmbeddingRepo) CreateBulk(ctx context.Context, e []*entity.ChunkEmbedding) error {
	return nil
}
func (r *memEmbeddingRepo) AllRefs(ctx context.Context) ([]*entity.EmbeddingRef, error) {
	return r.refs, nil
}
func (r *memEmbeddingRepo) DeleteByKnowledgeId(ctx context.Context, id uuid.UUID) error { return nil }
func (r *memEmbeddingRepo) DeleteByKnowledgeIds(ctx context.Context, ids []uuid.UUID) error {
	return nil
}
func (r *memEmbeddingRepo) Count(ctx context.Context) (int64, error) { return int64(len(r.refs)), nil }

type keywordEmbedder struct{}

func (e *keywordEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	vec := []float32{0, 1}
	if strings.Contains(strings.ToLower(text), "frankreich") {
		vec = []float32{1, 0}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

// scriptedProvider answers the context check affirmatively and streams a
// fixed answer, capturing the prompts it was given.
type scriptedProvider struct {
	checkResponse string
	answerTokens  []string
	checkPrompts  []string
	streamPrompts []string
	failStream    bool
}

func (p *scriptedProvider) Chat(ctx context.Context, h []llm.Message, options ...llm.Option) (string, error) {
	return "", nil
}

func (p *scriptedProvider) Generate(ctx context.Context, promptStr string, options ...llm.Option) (string, error) {
	p.checkPrompts = append(p.checkPrompts, promptStr)
	return p.checkResponse, nil
}

func (p *scriptedProvider) GenerateStream(ctx context.Context, promptStr string, options ...llm.Option) (<-chan llm.StreamEvent, error) {
	p.streamPrompts = append(p.streamPrompts, promptStr)
	out := make(chan llm.StreamEvent)
	go func() {
		defer close(out)
		if p.failStream {
			out <- llm.StreamEvent{Err: assert.AnError}
			return
		}
		for _, tok := range p.answerTokens {
			out <- llm.StreamEvent{Token: tok}
		}
		out <- llm.StreamEvent{Final: &llm.Counts{
			InputTokens:  []string{"prompt"},
			OutputTokens: p.answerTokens,
		}}
	}()
	return out, nil
}

type staticKeywords map[string]struct{}

func (k staticKeywords) KeywordSet() map[string]struct{} { return k }

type nopLogger struct{}

func (nopLogger) Debug(module, msg string, details map[string]interface{}) {}
func (nopLogger) Info(module, msg string, details map[string]interface{})  {}
func (nopLogger) Warn(module, msg string, details map[string]interface{})  {}
func (nopLogger) Error(module, msg string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                              { return nil }

func newTestPipeline(provider *scriptedProvider, store *history.Store, chunks []*entity.KnowledgeChunk, refs []*entity.EmbeddingRef, keywords staticKeywords) *Pipeline {
	pre := preprocess.NewTextPreprocessor("de")
	tokenizer := llm.NewWordTokenizer()
	renderer := prompt.NewPhi4Renderer()

	ret := retriever.NewRetriever(
		&memKnowledgeRepo{chunks: chunks},
		&memEmbeddingRepo{refs: refs},
		&keywordEmbedder{},
		pre,
		tokenizer,
		retriever.Options{TopK: 1},
	)

	checker := answer.NewChecker(provider, renderer, "Antworte mit JA oder NEIN.", "ja")
	streamer := stream.NewStreamer(provider, store)

	return NewPipeline(
		store,
		ret,
		checker,
		streamer,
		renderer,
		pre,
		tokenizer,
		keywords,
		nil,
		nopLogger{},
		Options{
			SystemPrompt:         "Du bist ein hilfreicher Assistent.",
			NoDataContext:        "[Retrieved Documents]: [NO DATA]\n",
			ApologyMessage:       "I'm sorry, but I encountered an error while processing your request. Please try again later.",
			StopToken:            "<|im_end|>",
			MaxChatHistoryLength: 2048,
		},
	)
}

func franceCorpus() ([]*entity.KnowledgeChunk, []*entity.EmbeddingRef) {
	france := &entity.KnowledgeChunk{
		Id:           uuid.New(),
		DocumentName: "Landeskunde",
		Title:        "Frankreich",
		RevisedText:  "Die Hauptstadt von Frankreich ist Paris.",
	}
	other := &entity.KnowledgeChunk{
		Id:           uuid.New(),
		DocumentName: "Landeskunde",
		Title:        "Wetter",
		RevisedText:  "Das Wetter ist heute schön.",
	}
	refs := []*entity.EmbeddingRef{
		{KnowledgeId: other.Id, Embedding: []float32{0, 1}},
		{KnowledgeId: france.Id, Embedding: []float32{1, 0}},
	}
	return []*entity.KnowledgeChunk{france, other}, refs
}

func TestPipelineEndToEnd(t *testing.T) {
	provider := &scriptedProvider{
		checkResponse: "JA",
		answerTokens:  []string{"Die Hauptstadt", " von Frankreich", " ist Paris."},
	}
	store := history.NewStore()
	chunks, refs := franceCorpus()

	p := newTestPipeline(provider, store, chunks, refs, staticKeywords{"frankreich": {}})

	var emitted []string
	fullText, err := p.Respond(context.Background(), testSessionID, "Was ist die Hauptstadt von Frankreich?", func(tok string) error {
		emitted = append(emitted, tok)
		return nil
	})
	require.NoError(t, err)

	// Stream is non-empty and reassembles into the returned text.
	require.NotEmpty(t, emitted)
	assert.Equal(t, "Die Hauptstadt von Frankreich ist Paris.", fullText)
	assert.Equal(t, fullText, strings.Join(emitted, ""))

	// The retrieved context made it into the generation prompt.
	require.Len(t, provider.streamPrompts, 1)
	assert.Contains(t, provider.streamPrompts[0], "Kontext: Die Hauptstadt von Frankreich ist Paris.")
	assert.Contains(t, provider.streamPrompts[0], "Was ist die Hauptstadt von Frankreich?")

	// The sufficiency check ran against the same context.
	require.Len(t, provider.checkPrompts, 1)
	assert.Contains(t, provider.checkPrompts[0], "Die Hauptstadt von Frankreich ist Paris.")

	// System, human and AI messages persisted in order.
	messages := store.Messages(testSessionID)
	require.Len(t, messages, 3)
	assert.Equal(t, history.RoleSystem, messages[0].Role)
	assert.Equal(t, history.RoleHuman, messages[1].Role)
	assert.Equal(t, history.RoleAI, messages[2].Role)
	assert.Equal(t, fullText, messages[2].Content)
	assert.Equal(t, len(provider.answerTokens), messages[2].TokenCount)
}

func TestPipelineGateMissUsesNoDataContext(t *testing.T) {
	provider := &scriptedProvider{
		checkResponse: "JA",
		answerTokens:  []string{"Dazu habe ich keine Informationen."},
	}
	store := history.NewStore()
	chunks, refs := franceCorpus()

	p := newTestPipeline(provider, store, chunks, refs, staticKeywords{"frankreich": {}})

	_, err := p.Respond(context.Background(), testSessionID, "Wie backe ich einen Kuchen?", nil)
	require.NoError(t, err)

	// No keyword overlap: neither retrieval nor the check ran.
	assert.Empty(t, provider.checkPrompts)
	require.Len(t, provider.streamPrompts, 1)
	assert.Contains(t, provider.streamPrompts[0], "[Retrieved Documents]: [NO DATA]")
}

func TestPipelineInsufficientContextFallsBack(t *testing.T) {
	provider := &scriptedProvider{
		checkResponse: "NEIN",
		answerTokens:  []string{"Dazu habe ich keine Informationen."},
	}
	store := history.NewStore()
	chunks, refs := franceCorpus()

	p := newTestPipeline(provider, store, chunks, refs, staticKeywords{"frankreich": {}})

	_, err := p.Respond(context.Background(), testSessionID, "Was ist die Hauptstadt von Frankreich?", nil)
	require.NoError(t, err)

	// Check ran but said no: the generation prompt gets the no-data marker.
	require.Len(t, provider.checkPrompts, 1)
	require.Len(t, provider.streamPrompts, 1)
	assert.Contains(t, provider.streamPrompts[0], "[Retrieved Documents]: [NO DATA]")
}

func TestPipelineGenerationFailureApologizes(t *testing.T) {
	provider := &scriptedProvider{
		checkResponse: "JA",
		failStream:    true,
	}
	store := history.NewStore()
	chunks, refs := franceCorpus()

	p := newTestPipeline(provider, store, chunks, refs, staticKeywords{"frankreich": {}})

	var emitted []string
	fullText, err := p.Respond(context.Background(), testSessionID, "Was ist die Hauptstadt von Frankreich?", func(tok string) error {
		emitted = append(emitted, tok)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "I'm sorry, but I encountered an error while processing your request. Please try again later.", fullText)
	assert.Contains(t, emitted, fullText)

	// No AI message was persisted for the failed generation.
	for _, msg := range store.Messages(testSessionID) {
		assert.NotEqual(t, history.RoleAI, msg.Role)
	}
}

func TestPipelineSecondTurnCarriesHistory(t *testing.T) {
	provider := &scriptedProvider{
		checkResponse: "JA",
		answerTokens:  []string{"Paris."},
	}
	store := history.NewStore()
	chunks, refs := franceCorpus()

	p := newTestPipeline(provider, store, chunks, refs, staticKeywords{"frankreich": {}})

	_, err := p.Respond(context.Background(), testSessionID, "Was ist die Hauptstadt von Frankreich?", nil)
	require.NoError(t, err)
	_, err = p.Respond(context.Background(), testSessionID, "Und wie viele Einwohner hat Frankreich?", nil)
	require.NoError(t, err)

	// One system prompt, then alternating human/AI turns.
	messages := store.Messages(testSessionID)
	require.Len(t, messages, 5)
	assert.Equal(t, history.RoleSystem, messages[0].Role)

	// The second prompt contains the first exchange.
	require.Len(t, provider.streamPrompts, 2)
	assert.Contains(t, provider.streamPrompts[1], "Was ist die Hauptstadt von Frankreich?")
	assert.Contains(t, provider.streamPrompts[1], "Und wie viele Einwohner hat Frankreich?")
}
