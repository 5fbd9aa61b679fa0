package pipeline

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// Coercer materializes the typed record. Values that do not parse become
// unknown; it never fails.
type Coercer struct {
	dateLayout string
}

// NewCoercer creates a coercer that accepts dates in exactly dateLayout.
func NewCoercer(dateLayout string) *Coercer {
	return &Coercer{dateLayout: dateLayout}
}

// Execute implements RecordStep.
func (c *Coercer) Execute(state *RecordState) {
	f := state.Fields
	rec := &domain.Record{}

	if v, ok := f[domain.ColTransactionID]; ok {
		rec.TransactionID = domain.String(v)
	}
	if v, ok := f[domain.ColItem]; ok {
		rec.Item = domain.String(v)
	}
	if v, ok := f[domain.ColPaymentMethod]; ok {
		rec.PaymentMethod = domain.String(v)
	}
	if v, ok := f[domain.ColLocation]; ok {
		rec.Location = domain.String(v)
	}

	rec.Quantity = c.coerce(state, domain.ColQuantity, ParseNumber)
	rec.UnitPrice = c.coerce(state, domain.ColUnitPrice, ParseNumber)
	rec.TotalSpent = c.coerce(state, domain.ColTotalSpent, ParseCurrency)

	if v, ok := f[domain.ColTransactionDate]; ok {
		if d, ok := ParseDate(c.dateLayout, v); ok {
			rec.TransactionDate = &d
		} else {
			state.addIssue(domain.ColTransactionDate, IssueUnparseable)
		}
	}

	state.Record = rec
}

func (c *Coercer) coerce(state *RecordState, col string, parse func(string) (decimal.Decimal, bool)) *decimal.Decimal {
	v, ok := state.Fields[col]
	if !ok {
		return nil
	}
	d, ok := parse(v)
	if !ok {
		state.addIssue(col, IssueUnparseable)
		return nil
	}
	return &d
}

// Bounds on parsed numbers. maxDigits matches BigQuery NUMERIC precision.
const (
	maxExponent = 32
	maxDigits   = 38
)

// ParseNumber parses a non-negative decimal, tolerating surrounding spaces,
// a leading plus sign and exponent notation. Values with an exponent beyond
// ±maxExponent or more than maxDigits significant digits are rejected.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < -maxExponent || exp > maxExponent || d.NumDigits() > maxDigits {
		return decimal.Zero, false
	}
	return d, true
}

// ParseCurrency parses a non-negative monetary amount. On top of ParseNumber
// it accepts a leading currency symbol and thousands separators, as in
// "$1,234.50".
func ParseCurrency(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimPrefix(s, sym)
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	return ParseNumber(s)
}

// ParseDate parses s in exactly layout. Anything else, including
// surrounding whitespace, is rejected.
func ParseDate(layout, s string) (civil.Date, bool) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}
