package pipeline

import (
	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// CompletenessFilter drops records with no essential field at all.
type CompletenessFilter struct{}

// Execute implements TableStep.
func (CompletenessFilter) Execute(records []*domain.Record, report *Report) []*domain.Record {
	out := records[:0:0]
	for _, rec := range records {
		if !rec.HasEssential() {
			report.DroppedIncomplete++
			continue
		}
		out = append(out, rec)
	}
	return out
}

// IdentityFilter keeps the first record for each transaction id and drops
// records without one. Ids compare as exact strings, so " T1" and "T1" are
// distinct.
type IdentityFilter struct{}

// Execute implements TableStep.
func (IdentityFilter) Execute(records []*domain.Record, report *Report) []*domain.Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, rec := range records {
		id, ok := CanonicalID(rec.TransactionID)
		if !ok {
			report.DroppedMissingID++
			continue
		}
		if _, dup := seen[id]; dup {
			report.DroppedDuplicate++
			continue
		}
		seen[id] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// CanonicalID returns the string a transaction id is compared by. Only an
// unknown id has none; whitespace is part of the id.
func CanonicalID(id *string) (string, bool) {
	if id == nil {
		return "", false
	}
	return *id, true
}

// Compile-time interface checks.
var (
	_ RecordStep = (*PlaceholderNormalizer)(nil)
	_ RecordStep = (*CategoricalValidator)(nil)
	_ RecordStep = (*Coercer)(nil)
	_ RecordStep = (*Reconciler)(nil)
	_ TableStep  = CompletenessFilter{}
	_ TableStep  = IdentityFilter{}
)
