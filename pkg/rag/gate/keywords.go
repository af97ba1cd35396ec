package gate

import (
	"sort"

	"rag-chat-be/pkg/preprocess"
)

// BuildKeywordSet derives the corpus vocabulary the gate matches against:
// for each chunk text, the topN most frequent preprocessed tokens are added
// to the set. Recomputed at startup and after ingestion.
func BuildKeywordSet(texts []string, pre *preprocess.TextPreprocessor, topN int) map[string]struct{} {
	keywords := make(map[string]struct{})

	for _, text := range texts {
		counts := make(map[string]int)
		for _, token := range pre.Preprocess(text, true) {
			counts[token]++
		}

		tokens := make([]string, 0, len(counts))
		for token := range counts {
			tokens = append(tokens, token)
		}
		sort.Slice(tokens, func(i, j int) bool {
			if counts[tokens[i]] != counts[tokens[j]] {
				return counts[tokens[i]] > counts[tokens[j]]
			}
			return tokens[i] < tokens[j]
		})

		if len(tokens) > topN {
			tokens = tokens[:topN]
		}
		for _, token := range tokens {
			keywords[token] = struct{}{}
		}
	}

	return keywords
}
