package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/dvloznov/sales-cleaner/internal/config"
	"github.com/dvloznov/sales-cleaner/internal/gcs"
	"github.com/dvloznov/sales-cleaner/internal/logger"
	"github.com/dvloznov/sales-cleaner/internal/table"
)

// TableJob names the input and output tables of one cleaning run.
type TableJob struct {
	InputURI  string
	OutputURI string
	Delimiter rune
}

// CleanTable reads the source table, cleans it and writes the canonical
// table. The output is only replaced when every step succeeded.
func CleanTable(ctx context.Context, store gcs.Store, cfg *config.Config, job TableJob) (*Result, error) {
	log := logger.FromContext(ctx)

	rc, err := store.Open(ctx, job.InputURI)
	if err != nil {
		return nil, fmt.Errorf("CleanTable: open input: %w", err)
	}
	raws, err := table.Read(rc, job.Delimiter)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("CleanTable: read %s: %w", job.InputURI, err)
	}

	log.Info().
		Str("input", job.InputURI).
		Int("rows", len(raws)).
		Msg("Loaded source table")

	res, err := Clean(ctx, cfg, raws)
	if err != nil {
		return nil, fmt.Errorf("CleanTable: %w", err)
	}

	opts := table.WriteOptions{Delimiter: job.Delimiter, DateLayout: cfg.DateLayout}
	err = store.Put(ctx, job.OutputURI, func(w io.Writer) error {
		return table.Write(w, res.Records, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("CleanTable: write %s: %w", job.OutputURI, err)
	}

	log.Info().
		Str("run_id", res.Report.RunID).
		Str("output", job.OutputURI).
		Int("rows", len(res.Records)).
		Msg("Wrote canonical table")

	return res, nil
}
