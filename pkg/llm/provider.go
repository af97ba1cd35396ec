package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	StopToken   string // End-of-turn marker that terminates generation
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithStopToken(token string) Option {
	return func(o *Options) {
		o.StopToken = token
	}
}

// Counts is the terminal record of a generation stream: the decoded input
// and output word lists used for token accounting.
type Counts struct {
	InputTokens  []string
	OutputTokens []string
}

// StreamEvent is a tagged union over the elements of a generation stream.
// Exactly one field is set: a Token fragment, the Final counts record that
// ends a successful stream, or a terminal Err.
type StreamEvent struct {
	Token string
	Final *Counts
	Err   error
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// StreamProvider is implemented by backends that produce tokens one at a time.
// The returned channel yields zero or more Token events followed by exactly
// one Final or Err event, then closes. Cancelling ctx stops production; the
// channel is closed without a Final event in that case.
type StreamProvider interface {
	LLMProvider
	GenerateStream(ctx context.Context, prompt string, options ...Option) (<-chan StreamEvent, error)
}
