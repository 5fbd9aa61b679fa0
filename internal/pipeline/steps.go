package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dvloznov/sales-cleaner/internal/domain"
	"github.com/dvloznov/sales-cleaner/internal/logger"
)

// RecordStep is one per-record stage. It reads only the state left by the
// previous step and never the original source row.
type RecordStep interface {
	Execute(state *RecordState)
}

// TableStep is a whole-table stage that runs after every record step.
type TableStep interface {
	Execute(records []*domain.Record, report *Report) []*domain.Record
}

// RecordState is the working state of a single row as it moves through the
// record steps. Fields holds the still-untyped values; a missing key is
// unknown. Record is set once the coercer has materialized the row.
type RecordState struct {
	Fields domain.RawRecord
	Record *domain.Record

	Issues          []Issue
	TotalRecomputed bool
}

func (s *RecordState) addIssue(column string, kind IssueKind) {
	s.Issues = append(s.Issues, Issue{Column: column, Kind: kind})
}

// Pipeline runs the record steps over every row, fanned out over workers,
// and then the table steps sequentially in input order.
type Pipeline struct {
	recordSteps []RecordStep
	tableSteps  []TableStep
	workers     int
}

// NewPipeline creates a pipeline. workers <= 0 means GOMAXPROCS.
func NewPipeline(workers int, recordSteps []RecordStep, tableSteps ...TableStep) *Pipeline {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pipeline{
		recordSteps: recordSteps,
		tableSteps:  tableSteps,
		workers:     workers,
	}
}

// Result is the output of one run.
type Result struct {
	Records []*domain.Record
	Report  *Report
}

// minChunk keeps tiny inputs from being split into many goroutines.
const minChunk = 256

// Run cleans raws. The input slice is not modified. The only error is
// context cancellation.
func (p *Pipeline) Run(ctx context.Context, raws []domain.RawRecord) (*Result, error) {
	log := logger.FromContext(ctx)

	report := newReport(uuid.NewString(), len(raws))
	states := make([]RecordState, len(raws))

	chunk := (len(raws) + p.workers - 1) / p.workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for start := 0; start < len(raws); start += chunk {
		end := start + chunk
		if end > len(raws) {
			end = len(raws)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				states[i] = RecordState{Fields: raws[i].Clone()}
				for _, step := range p.recordSteps {
					step.Execute(&states[i])
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline: record steps: %w", err)
	}

	records := make([]*domain.Record, 0, len(states))
	for i := range states {
		report.addState(&states[i])
		if states[i].Record == nil {
			// No coercer in the step list: nothing typed to emit.
			continue
		}
		records = append(records, states[i].Record)
	}

	log.Debug().
		Str("run_id", report.RunID).
		Int("rows", len(records)).
		Int("workers", p.workers).
		Msg("Record steps complete")

	for _, step := range p.tableSteps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline: table steps: %w", err)
		}
		records = step.Execute(records, report)
	}

	report.OutputRows = len(records)
	report.FinishedAt = time.Now()

	log.Info().
		Str("run_id", report.RunID).
		Int("input_rows", report.InputRows).
		Int("output_rows", report.OutputRows).
		Int("dropped_incomplete", report.DroppedIncomplete).
		Int("dropped_missing_id", report.DroppedMissingID).
		Int("dropped_duplicate", report.DroppedDuplicate).
		Int("totals_recomputed", report.TotalsRecomputed).
		Msg("Cleaning run complete")

	return &Result{Records: records, Report: report}, nil
}
