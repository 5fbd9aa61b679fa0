package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dvloznov/sales-cleaner/internal/config"
	"github.com/dvloznov/sales-cleaner/internal/gcsuploader"
	"github.com/dvloznov/sales-cleaner/internal/logger"
	"github.com/dvloznov/sales-cleaner/internal/pipeline"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Usage: clean -in SOURCE -out TARGET [-config FILE] [-delimiter ,]")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log = logger.WithLevel(log, cfg.Level())

	// Create context with timeout so the run doesn't hang on storage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	res, err := pipeline.CleanTable(ctx, gcsuploader.NewStorageService(), cfg, pipeline.TableJob{
		InputURI:  opts.in,
		OutputURI: opts.out,
		Delimiter: opts.delimiter,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Cleaning failed")
	}

	fmt.Printf("Cleaned %d of %d rows into %s (run %s)\n",
		res.Report.OutputRows, res.Report.InputRows, opts.out, res.Report.RunID)
}

type options struct {
	in         string
	out        string
	configPath string
	delimiter  rune
}

func parseArgs(args []string) (*options, error) {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	in := fs.String("in", "", "Source table, local path or gs:// URI (required)")
	out := fs.String("out", "", "Canonical table, local path or gs:// URI (required)")
	cfgPath := fs.String("config", os.Getenv("SALES_CLEAN_CONFIG"), "YAML config file")
	delim := fs.String("delimiter", ",", "Field delimiter of input and output tables")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *in == "" || *out == "" {
		return nil, fmt.Errorf("-in and -out are required")
	}
	delimiter, err := parseDelimiter(*delim)
	if err != nil {
		return nil, err
	}
	return &options{in: *in, out: *out, configPath: *cfgPath, delimiter: delimiter}, nil
}

// parseDelimiter accepts exactly one character.
func parseDelimiter(s string) (rune, error) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r[0], nil
}
