package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	bq "github.com/dvloznov/sales-cleaner/internal/bigquery"
	"github.com/dvloznov/sales-cleaner/internal/domain"
)

// Re-export shared types so callers only import this package.
type (
	CanonicalRepository = bq.CanonicalRepository
	CanonicalRow        = bq.CanonicalRow
)

// TableRef identifies the destination table.
type TableRef struct {
	ProjectID string
	DatasetID string
	TableID   string
}

func (t TableRef) String() string {
	return fmt.Sprintf("%s.%s.%s", t.ProjectID, t.DatasetID, t.TableID)
}

// BigQueryCanonicalRepository is the concrete implementation of
// CanonicalRepository. It holds a shared BigQuery client to avoid creating
// a new connection for each operation.
type BigQueryCanonicalRepository struct {
	client *bigquery.Client
	table  TableRef
}

// NewBigQueryCanonicalRepository creates a repository writing to table.
func NewBigQueryCanonicalRepository(ctx context.Context, table TableRef) (*BigQueryCanonicalRepository, error) {
	if table.ProjectID == "" || table.DatasetID == "" || table.TableID == "" {
		return nil, fmt.Errorf("NewBigQueryCanonicalRepository: incomplete table reference %q", table.String())
	}
	client, err := bigquery.NewClient(ctx, table.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryCanonicalRepository: creating client: %w", err)
	}
	return &BigQueryCanonicalRepository{client: client, table: table}, nil
}

// Close closes the BigQuery client connection.
func (r *BigQueryCanonicalRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// PublishRecords delegates to PublishRecordsWithClient with the shared client.
func (r *BigQueryCanonicalRepository) PublishRecords(ctx context.Context, runID string, records []*domain.Record) error {
	return PublishRecordsWithClient(ctx, r.client, r.table, runID, records)
}

// QueryRowsByRun delegates to QueryRowsByRunWithClient with the shared client.
func (r *BigQueryCanonicalRepository) QueryRowsByRun(ctx context.Context, runID string) ([]*CanonicalRow, error) {
	return QueryRowsByRunWithClient(ctx, r.client, r.table, runID)
}

var _ CanonicalRepository = (*BigQueryCanonicalRepository)(nil)
