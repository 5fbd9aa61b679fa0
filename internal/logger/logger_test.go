package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected logger to be enabled")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("rows cleaned")

	if !strings.Contains(buf.String(), "rows cleaned") {
		t.Errorf("Expected output to contain 'rows cleaned', got: %s", buf.String())
	}
}

func TestWithLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithLevel(NewWithWriter(buf), zerolog.WarnLevel)

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be dropped at warn level, got: %s", buf.String())
	}

	log.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected warn output, got: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	retrieved := FromContext(ctx)
	retrieved.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_NopWhenMissing(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("Expected disabled logger without context value, got level %v", log.GetLevel())
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(NewWithWriter(buf), map[string]interface{}{
		"run_id": "r-1",
		"rows":   3,
	})
	log.Info().Msg("done")

	out := buf.String()
	if !strings.Contains(out, `"run_id":"r-1"`) {
		t.Errorf("Expected run_id field, got: %s", out)
	}
	if !strings.Contains(out, `"rows":3`) {
		t.Errorf("Expected rows field, got: %s", out)
	}
}
