package llm

import (
	"context"
	"sync"
)

// SerializedProvider forces at most one generation against the underlying
// model at a time. Local serving engines hold a single stateful context, so
// the lock is held for the whole lifetime of a stream, not just the call
// that opens it.
type SerializedProvider struct {
	inner StreamProvider
	mu    sync.Mutex
}

var _ StreamProvider = &SerializedProvider{}

func NewSerializedProvider(inner StreamProvider) *SerializedProvider {
	return &SerializedProvider{inner: inner}
}

func (s *SerializedProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Chat(ctx, history, options...)
}

func (s *SerializedProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Generate(ctx, prompt, options...)
}

func (s *SerializedProvider) GenerateStream(ctx context.Context, prompt string, options ...Option) (<-chan StreamEvent, error) {
	s.mu.Lock()

	inner, err := s.inner.GenerateStream(ctx, prompt, options...)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	events := make(chan StreamEvent)
	go func() {
		defer s.mu.Unlock()
		defer close(events)
		for event := range inner {
			select {
			case events <- event:
			case <-ctx.Done():
				// Consumer went away; drain the producer so it can finish.
				for range inner {
				}
				return
			}
		}
	}()
	return events, nil
}
