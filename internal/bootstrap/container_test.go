package bootstrap

import (
	"testing"

	"rag-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSystemPromptBudget(t *testing.T) {
	tokenizer := llm.NewWordTokenizer()

	// The compiled-in prompts fit the default ceiling.
	assert.NoError(t, checkSystemPromptBudget(tokenizer, 1024))

	// A ceiling below the prompt sizes stops startup.
	err := checkSystemPromptBudget(tokenizer, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAG_MAX_SYSTEM_PROMPT_LENGTH")
}
