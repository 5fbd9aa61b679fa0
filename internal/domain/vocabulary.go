package domain

// Vocabulary is a closed, case-sensitive set of permitted category labels.
type Vocabulary map[string]struct{}

// NewVocabulary builds a vocabulary from the given labels.
func NewVocabulary(labels ...string) Vocabulary {
	v := make(Vocabulary, len(labels))
	for _, l := range labels {
		v[l] = struct{}{}
	}
	return v
}

// Contains reports whether label is a member of the vocabulary.
func (v Vocabulary) Contains(label string) bool {
	_, ok := v[label]
	return ok
}

// Default vocabularies of the cafe export.
var (
	DefaultItems          = []string{"Coffee", "Tea", "Cake", "Cookie", "Sandwich", "Salad", "Smoothie", "Juice"}
	DefaultPaymentMethods = []string{"Credit Card", "Cash", "Digital Wallet"}
	DefaultLocations      = []string{"In-store", "Takeaway"}

	// DefaultPlaceholders are the literal values the source uses for missing data.
	DefaultPlaceholders = []string{"ERROR", "UNKNOWN", ""}
)
