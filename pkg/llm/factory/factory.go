package factory

import (
	"fmt"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured streaming backend wrapped in the
// serialization guard (the model handle is a single shared resource).
func NewLLMProvider(providerType, modelName, baseURL string, tokenizer llm.Tokenizer) (llm.StreamProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return llm.NewSerializedProvider(ollama.NewOllamaProvider(baseURL, modelName, tokenizer)), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
