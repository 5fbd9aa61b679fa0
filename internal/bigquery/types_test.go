package bigquery

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/sales-cleaner/internal/domain"
)

func TestToRow_RoundTrip(t *testing.T) {
	published := time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)
	rec := &domain.Record{
		TransactionID:   domain.String("T1"),
		Item:            domain.String("Coffee"),
		Quantity:        domain.Decimal(decimal.RequireFromString("2")),
		UnitPrice:       domain.Decimal(decimal.RequireFromString("3.5")),
		TotalSpent:      domain.Decimal(decimal.RequireFromString("7")),
		PaymentMethod:   domain.String("Cash"),
		Location:        domain.String("In-store"),
		TransactionDate: domain.Date(civil.Date{Year: 2024, Month: 1, Day: 5}),
	}

	row := ToRow("run-1", rec, published)
	if row.RunID != "run-1" || row.TransactionID != "T1" || !row.PublishedTS.Equal(published) {
		t.Errorf("unexpected row header fields: %+v", row)
	}
	if row.UnitPrice.FloatString(1) != "3.5" {
		t.Errorf("UnitPrice = %s, want 3.5", row.UnitPrice.FloatString(1))
	}

	got := row.Record()
	decimalEqual := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(rec, got, decimalEqual); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToRow_Nulls(t *testing.T) {
	row := ToRow("run-1", &domain.Record{TransactionID: domain.String("T2")}, time.Now())

	if row.Item.Valid || row.PaymentMethod.Valid || row.Location.Valid || row.TransactionDate.Valid {
		t.Errorf("Expected null categorical and date fields: %+v", row)
	}
	if row.Quantity != nil || row.UnitPrice != nil || row.TotalSpent != nil {
		t.Errorf("Expected null numeric fields: %+v", row)
	}

	rec := row.Record()
	if rec.Item != nil || rec.Quantity != nil || rec.TransactionDate != nil {
		t.Errorf("Expected nulls to survive the round trip: %+v", rec)
	}
}
