package llm

import (
	"strings"
	"unicode"
)

// Tokenizer encodes text into model-tokenized units. Message token counts
// are computed once at insertion into the chat history and never recomputed,
// so all budget checks see consistent numbers as long as one Tokenizer
// instance is shared across the process.
type Tokenizer interface {
	Encode(text string) []string
	Count(text string) int
}

// WordTokenizer approximates a subword tokenizer by splitting on script
// boundaries: runs of letters/digits become tokens, every punctuation rune
// is its own token, long words are split into chunks. Exact per-model
// vocabularies live server-side (Ollama does not expose its tokenizer), so
// budgets here are conservative estimates.
type WordTokenizer struct {
	// MaxWordLen caps a single token; longer runs are chunked the way BPE
	// vocabularies break rare words apart.
	MaxWordLen int
}

func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{MaxWordLen: 8}
}

func (t *WordTokenizer) Encode(text string) []string {
	maxLen := t.MaxWordLen
	if maxLen <= 0 {
		maxLen = 8
	}

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		current.Reset()
		runes := []rune(word)
		for len(runes) > maxLen {
			tokens = append(tokens, string(runes[:maxLen]))
			runes = runes[maxLen:]
		}
		tokens = append(tokens, string(runes))
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

func (t *WordTokenizer) Count(text string) int {
	return len(t.Encode(text))
}
