package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	bq "github.com/dvloznov/sales-cleaner/internal/bigquery"
	"github.com/dvloznov/sales-cleaner/internal/domain"
	"github.com/dvloznov/sales-cleaner/internal/logger"
)

// insertBatchSize caps rows per streaming insert request.
const insertBatchSize = 500

// PublishRecordsWithClient streams records into the table, tagging every row
// with runID. Records come from a completed run, so they are already
// deduplicated.
func PublishRecordsWithClient(ctx context.Context, client *bigquery.Client, table TableRef, runID string, records []*domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	published := time.Now().UTC()
	rows := make([]*CanonicalRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, bq.ToRow(runID, rec, published))
	}

	inserter := client.DatasetInProject(table.ProjectID, table.DatasetID).Table(table.TableID).Inserter()
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := inserter.Put(ctx, rows[start:end]); err != nil {
			return fmt.Errorf("PublishRecords: inserting rows %d-%d: %w", start, end-1, err)
		}
	}

	log.Info().
		Str("run_id", runID).
		Str("table", table.String()).
		Int("rows", len(rows)).
		Msg("Published canonical table")

	return nil
}

// QueryRowsByRunWithClient reads back the rows of one run ordered by transaction id.
func QueryRowsByRunWithClient(ctx context.Context, client *bigquery.Client, table TableRef, runID string) ([]*CanonicalRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			run_id,
			transaction_id,
			item,
			payment_method,
			location,
			quantity,
			unit_price,
			total_spent,
			transaction_date,
			published_ts
		FROM `+"`%s`"+`
		WHERE run_id = @run_id
		ORDER BY transaction_id
	`, table.String()))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryRowsByRun: query read: %w", err)
	}

	var rows []*CanonicalRow
	for {
		var r CanonicalRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryRowsByRun: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}
