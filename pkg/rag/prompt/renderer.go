package prompt

import (
	"strings"

	"rag-chat-be/pkg/rag/history"
)

// Renderer turns chat messages into the turn markup one model family
// expects. Turn syntax differs per serving engine, so rendering stays
// behind this interface.
type Renderer interface {
	Render(messages []history.Message, context string) string
}

// markupRenderer covers the tagged-turn model families. A system message
// becomes a system block; a human message becomes a user block with the
// context appended as a labeled suffix inside the same turn, followed by
// an open assistant marker the model completes; an AI message is raw
// content closing the previously opened assistant turn.
type markupRenderer struct {
	system    string
	user      string
	assistant string
	suffix    string
	context   string
}

func (r *markupRenderer) Render(messages []history.Message, context string) string {
	var b strings.Builder

	for _, msg := range messages {
		switch msg.Role {
		case history.RoleSystem:
			b.WriteString(r.system)
			b.WriteString(msg.Content)
			b.WriteString(r.suffix)
		case history.RoleHuman:
			b.WriteString(r.user)
			b.WriteString(msg.Content)
			if context != "" {
				b.WriteString(r.context)
				b.WriteString(context)
			}
			b.WriteString(r.suffix)
			b.WriteString(r.assistant)
		case history.RoleAI:
			b.WriteString(msg.Content)
			b.WriteString(r.suffix)
		}
	}

	return b.String()
}

// NewPhi4Renderer renders phi-4 turn markup.
func NewPhi4Renderer() Renderer {
	return &markupRenderer{
		system:    "<|im_start|>system<|im_sep|>\n",
		user:      "<|im_start|>user<|im_sep|>\n",
		assistant: "<|im_start|>assistant<|im_sep|>\n",
		suffix:    "<|im_end|>\n",
		context:   "\n\nKontext: ",
	}
}

// NewChatMLRenderer renders standard ChatML markup for models without the
// phi-4 <|im_sep|> convention.
func NewChatMLRenderer() Renderer {
	return &markupRenderer{
		system:    "<|im_start|>system\n",
		user:      "<|im_start|>user\n",
		assistant: "<|im_start|>assistant\n",
		suffix:    "<|im_end|>\n",
		context:   "\n\nKontext: ",
	}
}

// NewRenderer selects the renderer for a configured prompt format, falling
// back to phi4.
func NewRenderer(format string) Renderer {
	switch format {
	case "chatml":
		return NewChatMLRenderer()
	default:
		return NewPhi4Renderer()
	}
}
