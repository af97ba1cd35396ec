package prompt

import (
	"fmt"

	"rag-chat-be/pkg/rag/history"
)

// LimitHistory trims messages to the token budget. It walks newest-first,
// keeps system messages unconditionally, accumulates human/AI messages
// until the next one would exceed maxTokens, then restores chronological
// order. The result is a suffix of the chronological input (plus system
// messages): no gaps, oldest dropped first.
func LimitHistory(messages []history.Message, maxTokens int) ([]history.Message, error) {
	filtered := make([]history.Message, 0, len(messages))
	totalTokens := 0
	budgetSpent := false

	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]

		// System messages are exempt from the budget and survive even a
		// zero-token limit.
		if msg.Role == history.RoleSystem {
			filtered = append(filtered, msg)
			continue
		}
		if budgetSpent {
			continue
		}

		if msg.TokenCount == 0 && msg.Content != "" {
			return nil, fmt.Errorf("%s message is missing its token count", msg.Role)
		}

		// First overflow ends accumulation, so the kept human/AI messages
		// form a contiguous suffix.
		if totalTokens+msg.TokenCount > maxTokens {
			budgetSpent = true
			continue
		}

		filtered = append(filtered, msg)
		totalTokens += msg.TokenCount
	}

	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	return filtered, nil
}
