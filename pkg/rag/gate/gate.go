package gate

// Matches reports whether the preprocessed query shares any vocabulary with
// the corpus keyword set. A cheap pre-filter before retrieval: false
// negatives are accepted, the gate is a heuristic, not a guarantee.
func Matches(tokens []string, keywords map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := keywords[t]; ok {
			return true
		}
	}
	return false
}
