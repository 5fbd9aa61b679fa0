package bigquery

import (
	"context"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// numericScale is the fractional precision of a BigQuery NUMERIC column.
const numericScale = 9

// CanonicalRepository publishes canonical transaction tables and reads them back.
type CanonicalRepository interface {
	// PublishRecords streams the records of one cleaning run into the table.
	PublishRecords(ctx context.Context, runID string, records []*domain.Record) error

	// QueryRowsByRun returns the rows published by runID in transaction id order.
	QueryRowsByRun(ctx context.Context, runID string) ([]*CanonicalRow, error)

	// Close releases the underlying client.
	Close() error
}

// CanonicalRow is one canonical transaction in BigQuery.
type CanonicalRow struct {
	RunID         string `bigquery:"run_id"`         // REQUIRED
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	Item          bigquery.NullString `bigquery:"item"`           // NULLABLE
	PaymentMethod bigquery.NullString `bigquery:"payment_method"` // NULLABLE
	Location      bigquery.NullString `bigquery:"location"`       // NULLABLE

	Quantity   *big.Rat `bigquery:"quantity"`    // NULLABLE NUMERIC
	UnitPrice  *big.Rat `bigquery:"unit_price"`  // NULLABLE NUMERIC
	TotalSpent *big.Rat `bigquery:"total_spent"` // NULLABLE NUMERIC

	TransactionDate bigquery.NullDate `bigquery:"transaction_date"` // NULLABLE

	PublishedTS time.Time `bigquery:"published_ts"` // REQUIRED
}

// ToRow maps a canonical record to its BigQuery row.
func ToRow(runID string, rec *domain.Record, published time.Time) *CanonicalRow {
	row := &CanonicalRow{
		RunID:         runID,
		Item:          nullString(rec.Item),
		PaymentMethod: nullString(rec.PaymentMethod),
		Location:      nullString(rec.Location),
		Quantity:      rat(rec.Quantity),
		UnitPrice:     rat(rec.UnitPrice),
		TotalSpent:    rat(rec.TotalSpent),
		PublishedTS:   published,
	}
	if rec.TransactionID != nil {
		row.TransactionID = *rec.TransactionID
	}
	if rec.TransactionDate != nil {
		row.TransactionDate = bigquery.NullDate{Date: *rec.TransactionDate, Valid: true}
	}
	return row
}

// Record maps the row back to a canonical record.
func (r *CanonicalRow) Record() *domain.Record {
	rec := &domain.Record{
		TransactionID: domain.String(r.TransactionID),
		Item:          fromNullString(r.Item),
		PaymentMethod: fromNullString(r.PaymentMethod),
		Location:      fromNullString(r.Location),
		Quantity:      fromRat(r.Quantity),
		UnitPrice:     fromRat(r.UnitPrice),
		TotalSpent:    fromRat(r.TotalSpent),
	}
	if r.TransactionDate.Valid {
		rec.TransactionDate = domain.Date(r.TransactionDate.Date)
	}
	return rec
}

func nullString(s *string) bigquery.NullString {
	if s == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *s, Valid: true}
}

func fromNullString(s bigquery.NullString) *string {
	if !s.Valid {
		return nil
	}
	return domain.String(s.StringVal)
}

func rat(d *decimal.Decimal) *big.Rat {
	if d == nil {
		return nil
	}
	return d.Round(numericScale).Rat()
}

func fromRat(r *big.Rat) *decimal.Decimal {
	if r == nil {
		return nil
	}
	d, err := decimal.NewFromString(r.FloatString(numericScale))
	if err != nil {
		return nil
	}
	return &d
}
