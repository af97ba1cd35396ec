package answer

import (
	"context"
	"errors"
	"testing"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Chat(ctx context.Context, h []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	f.lastPrompt = p
	return f.response, f.err
}

func TestIsAnswerInContext(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"plain affirmative", "JA", true},
		{"affirmative in sentence", "Die Antwort lautet: Ja.", true},
		{"negative", "NEIN", false},
		{"empty response", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(&fakeLLM{response: tt.response}, prompt.NewPhi4Renderer(), "Systemanweisung", "ja")

			got, err := checker.IsAnswerInContext(context.Background(), "Frage?", "Kontexttext")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAnswerInContextPromptShape(t *testing.T) {
	model := &fakeLLM{response: "NEIN"}
	checker := NewChecker(model, prompt.NewPhi4Renderer(), "Prüfe den Kontext.", "ja")

	_, err := checker.IsAnswerInContext(context.Background(), "Was ist die Hauptstadt von Frankreich?", "Die Hauptstadt von Frankreich ist Paris.")
	require.NoError(t, err)

	assert.Contains(t, model.lastPrompt, "Prüfe den Kontext.")
	assert.Contains(t, model.lastPrompt, "Was ist die Hauptstadt von Frankreich?")
	assert.Contains(t, model.lastPrompt, "Kontext: Die Hauptstadt von Frankreich ist Paris.")
}

func TestIsAnswerInContextGenerationError(t *testing.T) {
	checker := NewChecker(&fakeLLM{err: errors.New("model offline")}, prompt.NewPhi4Renderer(), "System", "ja")

	_, err := checker.IsAnswerInContext(context.Background(), "Frage", "Kontext")
	assert.Error(t, err)
}
