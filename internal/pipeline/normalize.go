package pipeline

// PlaceholderNormalizer removes fields whose literal value is a sentinel
// token. Matching is exact: no trimming, no case folding.
type PlaceholderNormalizer struct {
	tokens map[string]struct{}
}

// NewPlaceholderNormalizer creates a normalizer for the given tokens.
func NewPlaceholderNormalizer(tokens []string) *PlaceholderNormalizer {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return &PlaceholderNormalizer{tokens: set}
}

// IsPlaceholder reports whether value is one of the sentinel tokens.
func (n *PlaceholderNormalizer) IsPlaceholder(value string) bool {
	_, ok := n.tokens[value]
	return ok
}

// Execute implements RecordStep.
func (n *PlaceholderNormalizer) Execute(state *RecordState) {
	for col, v := range state.Fields {
		if n.IsPlaceholder(v) {
			delete(state.Fields, col)
			if v != "" {
				state.addIssue(col, IssuePlaceholder)
			}
		}
	}
}
