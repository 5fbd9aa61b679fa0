package pipeline

import (
	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// CategoricalValidator removes categorical fields that are not members of
// their column's vocabulary. Comparison is case-sensitive.
type CategoricalValidator struct {
	vocabularies map[string]domain.Vocabulary // column -> permitted labels
}

// NewCategoricalValidator creates a validator for the item, payment method
// and location columns.
func NewCategoricalValidator(items, payments, locations domain.Vocabulary) *CategoricalValidator {
	return &CategoricalValidator{
		vocabularies: map[string]domain.Vocabulary{
			domain.ColItem:          items,
			domain.ColPaymentMethod: payments,
			domain.ColLocation:      locations,
		},
	}
}

// Valid reports whether label is permitted for column. Columns without a
// vocabulary accept nothing.
func (v *CategoricalValidator) Valid(column, label string) bool {
	vocab, ok := v.vocabularies[column]
	if !ok {
		return false
	}
	return vocab.Contains(label)
}

// Execute implements RecordStep.
func (v *CategoricalValidator) Execute(state *RecordState) {
	for _, col := range categoricalColumns {
		label, ok := state.Fields[col]
		if !ok {
			continue
		}
		if !v.Valid(col, label) {
			delete(state.Fields, col)
			state.addIssue(col, IssueOutOfVocabulary)
		}
	}
}
