package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// WriteOptions controls the output format.
type WriteOptions struct {
	Delimiter  rune
	DateLayout string
}

// Write emits the header and one row per record. Unknown values are empty
// fields, numbers use plain decimal notation.
func Write(w io.Writer, records []*domain.Record, opts WriteOptions) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultDelimiter
	}
	if opts.DateLayout == "" {
		opts.DateLayout = "2006-01-02"
	}

	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter

	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("Write: header: %w", err)
	}

	row := make([]string, len(domain.Columns))
	for i, rec := range records {
		row[0] = str(rec.TransactionID)
		row[1] = str(rec.Item)
		row[2] = num(rec.Quantity)
		row[3] = num(rec.UnitPrice)
		row[4] = num(rec.TotalSpent)
		row[5] = str(rec.PaymentMethod)
		row[6] = str(rec.Location)
		row[7] = ""
		if rec.TransactionDate != nil {
			row[7] = rec.TransactionDate.In(time.UTC).Format(opts.DateLayout)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("Write: row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("Write: flush: %w", err)
	}
	return nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
