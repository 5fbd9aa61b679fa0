// Package table reads and writes the delimited transaction tables.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dvloznov/sales-cleaner/internal/domain"
)

var (
	// ErrMissingColumn is returned when the header lacks an expected column.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptyTable is returned when the input has no header row.
	ErrEmptyTable = errors.New("empty table")
)

// DefaultDelimiter separates fields unless configured otherwise.
const DefaultDelimiter = ','

// Read parses a delimited table whose header must contain every column in
// domain.Columns. Column order is irrelevant, extra columns are ignored and
// short rows are padded with empty fields.
func Read(r io.Reader, delimiter rune) ([]domain.RawRecord, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("Read: header: %w", err)
	}

	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.RawRecord
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Read: row %d: %w", len(rows)+1, err)
		}
		raw := make(domain.RawRecord, len(domain.Columns))
		for _, col := range domain.Columns {
			i := index[col]
			if i < len(fields) {
				raw[col] = fields[i]
			} else {
				raw[col] = ""
			}
		}
		rows = append(rows, raw)
	}

	return rows, nil
}

// mapHeader returns the position of every expected column.
func mapHeader(header []string) (map[string]int, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range domain.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("Read: %w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}
