package stream

import (
	"context"
	"fmt"
	"strings"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/history"
)

// Streamer consumes a raw generation stream while forwarding fragments to
// the caller, accumulating the full response so the finished AI message can
// be persisted to history even though the text arrived incrementally.
type Streamer struct {
	provider llm.StreamProvider
	store    *history.Store
}

func NewStreamer(provider llm.StreamProvider, store *history.Store) *Streamer {
	return &Streamer{
		provider: provider,
		store:    store,
	}
}

// Stream runs one generation and calls emit for every token fragment. On
// normal completion the accumulated text is persisted as an AI message with
// the output token count from the stream's terminal record, and the full
// text plus counts are returned. On a generation error the accumulated
// buffer is discarded and the error propagates; nothing is persisted. If
// ctx is cancelled before exhaustion the partial text is likewise dropped.
func (s *Streamer) Stream(
	ctx context.Context,
	sessionID string,
	prompt string,
	emit func(token string) error,
	options ...llm.Option,
) (string, *llm.Counts, error) {
	events, err := s.provider.GenerateStream(ctx, prompt, options...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start generation: %w", err)
	}

	var response strings.Builder
	var counts *llm.Counts

	for event := range events {
		switch {
		case event.Err != nil:
			return "", nil, fmt.Errorf("generation failed: %w", event.Err)
		case event.Final != nil:
			counts = event.Final
		default:
			response.WriteString(event.Token)
			if emit != nil {
				if err := emit(event.Token); err != nil {
					// Consumer gone; abandon without persisting.
					return "", nil, fmt.Errorf("stream consumer stopped: %w", err)
				}
			}
		}
	}

	if counts == nil {
		// Channel closed without a terminal record: cancelled mid-stream.
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("generation stream ended without a final record")
	}

	fullText := response.String()
	s.store.Add(sessionID, history.Message{
		Role:       history.RoleAI,
		Content:    fullText,
		TokenCount: len(counts.OutputTokens),
	})

	return fullText, counts, nil
}
