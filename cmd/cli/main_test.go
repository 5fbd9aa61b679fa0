package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dvloznov/sales-cleaner/internal/config"
	"github.com/dvloznov/sales-cleaner/internal/domain"
	"github.com/dvloznov/sales-cleaner/internal/logger"
	"github.com/dvloznov/sales-cleaner/internal/pipeline"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func cleanSample(t *testing.T) *pipeline.Result {
	t.Helper()
	res, err := pipeline.Clean(t.Context(), config.DefaultConfig(), []domain.RawRecord{{
		domain.ColTransactionID:   "T1",
		domain.ColItem:            "Coffee",
		domain.ColQuantity:        "2",
		domain.ColUnitPrice:       "3.50",
		domain.ColTotalSpent:      "",
		domain.ColPaymentMethod:   "Cash",
		domain.ColLocation:        "In-store",
		domain.ColTransactionDate: "2024-01-05",
	}})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	return res
}

func TestPrintSummary(t *testing.T) {
	var logs, out bytes.Buffer
	printSummary(logger.NewWithWriter(&logs), &out, cleanSample(t), config.DefaultConfig())

	for _, want := range []string{
		"Original number of rows: 1",
		"Number of rows after cleaning: 1",
		"Totals recomputed: 1",
		"T1,Coffee,2,3.5,7,Cash,In-store,2024-01-05",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}
	if logs.Len() != 0 {
		t.Errorf("Expected no log output, got %s", logs.String())
	}
}

func TestPrintSummary_SampleWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	printSummary(logger.NewWithWriter(&logs), failingWriter{}, cleanSample(t), config.DefaultConfig())

	if !strings.Contains(logs.String(), `"level":"warn"`) || !strings.Contains(logs.String(), "stdout closed") {
		t.Errorf("Expected a warning with the write error, got %s", logs.String())
	}
}
