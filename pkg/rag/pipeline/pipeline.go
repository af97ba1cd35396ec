package pipeline

import (
	"context"
	"strings"

	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/preprocess"
	"rag-chat-be/pkg/rag/answer"
	"rag-chat-be/pkg/rag/gate"
	"rag-chat-be/pkg/rag/history"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/rag/stream"
	"rag-chat-be/pkg/trace"
)

// KeywordSource exposes the current corpus keyword set for the
// knowledge-match gate. The set changes when documents are ingested.
type KeywordSource interface {
	KeywordSet() map[string]struct{}
}

type Options struct {
	SystemPrompt         string
	NoDataContext        string
	ApologyMessage       string
	StopToken            string
	MaxChatHistoryLength int
}

// Pipeline runs one chat request through the full sequence: gate,
// retrieval, context check, prompt assembly, generation, history update.
// Stages are strictly sequential within a request; concurrency happens
// across requests only.
type Pipeline struct {
	store        *history.Store
	retriever    *retriever.Retriever
	checker      *answer.Checker
	streamer     *stream.Streamer
	renderer     prompt.Renderer
	preprocessor *preprocess.TextPreprocessor
	tokenizer    llm.Tokenizer
	keywords     KeywordSource
	tracer       *trace.Tracer
	log          logger.ILogger
	opts         Options
}

func NewPipeline(
	store *history.Store,
	ret *retriever.Retriever,
	checker *answer.Checker,
	streamer *stream.Streamer,
	renderer prompt.Renderer,
	preprocessor *preprocess.TextPreprocessor,
	tokenizer llm.Tokenizer,
	keywords KeywordSource,
	tracer *trace.Tracer,
	log logger.ILogger,
	opts Options,
) *Pipeline {
	return &Pipeline{
		store:        store,
		retriever:    ret,
		checker:      checker,
		streamer:     streamer,
		renderer:     renderer,
		preprocessor: preprocessor,
		tokenizer:    tokenizer,
		keywords:     keywords,
		tracer:       tracer,
		log:          log,
		opts:         opts,
	}
}

// Respond processes one user message and forwards response fragments to
// emit. This is the single error boundary of the pipeline: every failure
// between retrieval and generation is logged and replaced by a static
// apology message instead of leaking internals. Only consumer abandonment
// (ctx cancelled, emit failing) propagates as an error; nothing is
// persisted in that case.
func (p *Pipeline) Respond(ctx context.Context, sessionID, message string, emit func(token string) error) (string, error) {
	t := p.tracer.NewTrace(sessionID)
	root := t.Begin("agent", trace.RunTypeChain, map[string]interface{}{
		"session_id": sessionID,
		"message":    message,
	})

	promptStr, err := p.assemble(ctx, t, sessionID, message)
	if err != nil {
		p.log.Error("pipeline", "Error processing message", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionID,
		})
		t.End(root, nil, err)
		return p.apologize(emit)
	}

	run := t.Begin("stream_generation", trace.RunTypeLLM, map[string]interface{}{
		"prompt": promptStr,
	})

	var options []llm.Option
	if p.opts.StopToken != "" {
		options = append(options, llm.WithStopToken(p.opts.StopToken))
	}

	fullText, counts, err := p.streamer.Stream(ctx, sessionID, promptStr, emit, options...)
	if err != nil {
		t.End(run, nil, err)
		t.End(root, nil, err)
		if ctx.Err() != nil {
			// Client is gone; no one is left to apologize to.
			return "", err
		}
		p.log.Error("pipeline", "Error in stream generation", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionID,
		})
		return p.apologize(emit)
	}

	t.End(run, map[string]interface{}{
		"response":      fullText,
		"input_tokens":  len(counts.InputTokens),
		"output_tokens": len(counts.OutputTokens),
	}, nil)
	t.End(root, map[string]interface{}{"response": fullText}, nil)

	p.log.Info("pipeline", "Generated response stream", map[string]interface{}{
		"session_id":    sessionID,
		"output_tokens": len(counts.OutputTokens),
	})
	return fullText, nil
}

// assemble runs every stage before generation and returns the rendered
// prompt for the model.
func (p *Pipeline) assemble(ctx context.Context, t *trace.Trace, sessionID, message string) (string, error) {
	run := t.Begin("message_processing", trace.RunTypeTool, map[string]interface{}{"message": message})
	tokens := p.preprocessor.Process(message)
	t.End(run, map[string]interface{}{"tokens": tokens}, nil)

	contextText := p.opts.NoDataContext

	run = t.Begin("knowledge_match", trace.RunTypeTool, map[string]interface{}{"tokens": tokens})
	matched := gate.Matches(tokens, p.keywords.KeywordSet())
	t.End(run, map[string]interface{}{"matched": matched}, nil)

	if matched {
		documents, err := p.retrieveDocuments(ctx, t, message)
		if err != nil {
			return "", err
		}

		run = t.Begin("search_answer_in_context", trace.RunTypeLLM, map[string]interface{}{
			"context_length": len(documents),
		})
		sufficient, err := p.checker.IsAnswerInContext(ctx, message, documents)
		t.End(run, map[string]interface{}{"sufficient": sufficient}, err)
		if err != nil {
			return "", err
		}
		if sufficient {
			contextText = documents
		}
	}

	return p.buildPrompt(t, sessionID, message, contextText)
}

func (p *Pipeline) retrieveDocuments(ctx context.Context, t *trace.Trace, message string) (string, error) {
	run := t.Begin("retrieve_documents", trace.RunTypeRetriever, map[string]interface{}{"query": message})

	results, err := p.retriever.Retrieve(ctx, message)
	if err != nil {
		t.End(run, nil, err)
		return "", err
	}

	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.Content)
	}

	t.End(run, map[string]interface{}{"documents": len(results)}, nil)
	p.log.Debug("pipeline", "Retrieved documents from database", map[string]interface{}{
		"count": len(results),
	})
	return b.String(), nil
}

// buildPrompt seeds the system prompt on a session's first message, appends
// the user turn, trims history to the token budget and renders the model
// prompt.
func (p *Pipeline) buildPrompt(t *trace.Trace, sessionID, message, contextText string) (string, error) {
	run := t.Begin("handle_response", trace.RunTypeChain, map[string]interface{}{
		"session_id": sessionID,
	})

	if !p.store.Has(sessionID) {
		p.store.Add(sessionID, history.Message{
			Role:       history.RoleSystem,
			Content:    p.opts.SystemPrompt,
			TokenCount: p.tokenizer.Count(p.opts.SystemPrompt),
		})
	}
	p.store.Add(sessionID, history.Message{
		Role:       history.RoleHuman,
		Content:    message,
		TokenCount: p.tokenizer.Count(message),
	})

	limited, err := prompt.LimitHistory(p.store.Messages(sessionID), p.opts.MaxChatHistoryLength)
	if err != nil {
		t.End(run, nil, err)
		return "", err
	}

	promptStr := p.renderer.Render(limited, contextText)
	t.End(run, map[string]interface{}{"prompt_length": len(promptStr)}, nil)
	return promptStr, nil
}

// apologize substitutes the static fallback message for the stream.
func (p *Pipeline) apologize(emit func(token string) error) (string, error) {
	if emit != nil {
		if err := emit(p.opts.ApologyMessage); err != nil {
			return "", err
		}
	}
	return p.opts.ApologyMessage, nil
}
