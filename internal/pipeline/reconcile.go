package pipeline

import (
	"github.com/shopspring/decimal"
)

// Reconciler recomputes the total from quantity and unit price whenever
// both are known. A stored total within tolerance of the product is kept.
type Reconciler struct {
	tolerance decimal.Decimal
}

// NewReconciler creates a reconciler. A zero tolerance compares exactly.
func NewReconciler(tolerance decimal.Decimal) *Reconciler {
	return &Reconciler{tolerance: tolerance.Abs()}
}

// Execute implements RecordStep.
func (r *Reconciler) Execute(state *RecordState) {
	rec := state.Record
	if rec == nil || rec.Quantity == nil || rec.UnitPrice == nil {
		return
	}
	candidate := rec.Quantity.Mul(*rec.UnitPrice)
	if rec.TotalSpent == nil || !r.Matches(*rec.TotalSpent, candidate) {
		rec.TotalSpent = &candidate
		state.TotalRecomputed = true
	}
}

// Matches reports whether stored and computed agree within tolerance.
func (r *Reconciler) Matches(stored, computed decimal.Decimal) bool {
	return stored.Sub(computed).Abs().LessThanOrEqual(r.tolerance)
}
