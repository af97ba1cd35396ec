package answer

import (
	"context"
	"fmt"
	"strings"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/history"
	"rag-chat-be/pkg/rag/prompt"
)

// Checker classifies whether retrieved context actually answers the query.
// It is a prompted binary oracle, not a trained classifier: the model is
// asked to answer yes or no and the normalized reply is searched for the
// language's affirmative token. False positives and negatives happen.
type Checker struct {
	generator        llm.LLMProvider
	renderer         prompt.Renderer
	systemPrompt     string
	affirmativeToken string
}

func NewChecker(generator llm.LLMProvider, renderer prompt.Renderer, systemPrompt, affirmativeToken string) *Checker {
	return &Checker{
		generator:        generator,
		renderer:         renderer,
		systemPrompt:     systemPrompt,
		affirmativeToken: strings.ToLower(affirmativeToken),
	}
}

// IsAnswerInContext consumes a full generation for the comparison prompt,
// discarding individual tokens, and reports whether the reply affirms.
func (c *Checker) IsAnswerInContext(ctx context.Context, query, contextText string) (bool, error) {
	messages := []history.Message{
		{Role: history.RoleSystem, Content: c.systemPrompt},
		{Role: history.RoleHuman, Content: query},
	}
	comparePrompt := c.renderer.Render(messages, contextText)

	response, err := c.generator.Generate(ctx, comparePrompt)
	if err != nil {
		return false, fmt.Errorf("failed to run context check: %w", err)
	}

	return strings.Contains(strings.ToLower(response), c.affirmativeToken), nil
}
