package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Column names as they appear in the point-of-sale export.
const (
	ColTransactionID   = "Transaction ID"
	ColItem            = "Item"
	ColQuantity        = "Quantity"
	ColUnitPrice       = "Price Per Unit"
	ColTotalSpent      = "Total Spent"
	ColPaymentMethod   = "Payment Method"
	ColLocation        = "Location"
	ColTransactionDate = "Transaction Date"
)

// Columns lists the table columns in output order.
var Columns = []string{
	ColTransactionID,
	ColItem,
	ColQuantity,
	ColUnitPrice,
	ColTotalSpent,
	ColPaymentMethod,
	ColLocation,
	ColTransactionDate,
}

// RawRecord is one untyped source row keyed by exact column name.
type RawRecord map[string]string

// Clone returns a copy of the raw record.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Record is a canonical transaction. A nil field means unknown.
type Record struct {
	TransactionID   *string
	Item            *string
	Quantity        *decimal.Decimal
	UnitPrice       *decimal.Decimal
	TotalSpent      *decimal.Decimal
	PaymentMethod   *string
	Location        *string
	TransactionDate *civil.Date
}

// HasEssential reports whether at least one of item, quantity, unit price
// or total spent is known.
func (r *Record) HasEssential() bool {
	return r.Item != nil || r.Quantity != nil || r.UnitPrice != nil || r.TotalSpent != nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	return &Record{
		TransactionID:   cloneString(r.TransactionID),
		Item:            cloneString(r.Item),
		Quantity:        cloneDecimal(r.Quantity),
		UnitPrice:       cloneDecimal(r.UnitPrice),
		TotalSpent:      cloneDecimal(r.TotalSpent),
		PaymentMethod:   cloneString(r.PaymentMethod),
		Location:        cloneString(r.Location),
		TransactionDate: cloneDate(r.TransactionDate),
	}
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Decimal returns a pointer to d.
func Decimal(d decimal.Decimal) *decimal.Decimal { return &d }

// Date returns a pointer to d.
func Date(d civil.Date) *civil.Date { return &d }

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneDate(d *civil.Date) *civil.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
