package prompt

import (
	"testing"

	"rag-chat-be/pkg/rag/history"

	"github.com/stretchr/testify/assert"
)

func TestPhi4RendererMarkup(t *testing.T) {
	renderer := NewPhi4Renderer()

	messages := []history.Message{
		{Role: history.RoleSystem, Content: "Du bist ein hilfreicher Assistent."},
		{Role: history.RoleHuman, Content: "Was ist die Hauptstadt von Frankreich?"},
	}

	got := renderer.Render(messages, "Die Hauptstadt von Frankreich ist Paris.")

	want := "<|im_start|>system<|im_sep|>\n" +
		"Du bist ein hilfreicher Assistent.<|im_end|>\n" +
		"<|im_start|>user<|im_sep|>\n" +
		"Was ist die Hauptstadt von Frankreich?" +
		"\n\nKontext: Die Hauptstadt von Frankreich ist Paris.<|im_end|>\n" +
		"<|im_start|>assistant<|im_sep|>\n"
	assert.Equal(t, want, got)
}

func TestPhi4RendererWithoutContext(t *testing.T) {
	renderer := NewPhi4Renderer()

	got := renderer.Render([]history.Message{
		{Role: history.RoleHuman, Content: "Hallo"},
	}, "")

	assert.Equal(t, "<|im_start|>user<|im_sep|>\nHallo<|im_end|>\n<|im_start|>assistant<|im_sep|>\n", got)
	assert.NotContains(t, got, "Kontext:")
}

func TestPhi4RendererAIClosesTurn(t *testing.T) {
	renderer := NewPhi4Renderer()

	got := renderer.Render([]history.Message{
		{Role: history.RoleHuman, Content: "Hallo", TokenCount: 1},
		{Role: history.RoleAI, Content: "Guten Tag!", TokenCount: 2},
		{Role: history.RoleHuman, Content: "Wie geht es dir?", TokenCount: 5},
	}, "")

	// The AI content closes the assistant turn opened by the previous
	// human block; the prompt ends with an open assistant marker.
	assert.Contains(t, got, "<|im_start|>assistant<|im_sep|>\nGuten Tag!<|im_end|>\n")
	assert.True(t, len(got) > 0)
	assert.Equal(t, "<|im_start|>assistant<|im_sep|>\n", got[len(got)-len("<|im_start|>assistant<|im_sep|>\n"):])
}

func TestChatMLRenderer(t *testing.T) {
	renderer := NewChatMLRenderer()

	got := renderer.Render([]history.Message{
		{Role: history.RoleSystem, Content: "System"},
		{Role: history.RoleHuman, Content: "Frage"},
	}, "")

	assert.Contains(t, got, "<|im_start|>system\nSystem<|im_end|>\n")
	assert.Contains(t, got, "<|im_start|>user\nFrage<|im_end|>\n")
	assert.NotContains(t, got, "<|im_sep|>")
}

func TestNewRendererSelection(t *testing.T) {
	assert.Equal(t, NewPhi4Renderer(), NewRenderer("phi4"))
	assert.Equal(t, NewPhi4Renderer(), NewRenderer(""))
	assert.Equal(t, NewChatMLRenderer(), NewRenderer("chatml"))
}
