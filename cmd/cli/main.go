package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/sales-cleaner/internal/config"
	"github.com/dvloznov/sales-cleaner/internal/domain"
	"github.com/dvloznov/sales-cleaner/internal/gcsuploader"
	infraBQ "github.com/dvloznov/sales-cleaner/internal/infra/bigquery"
	"github.com/dvloznov/sales-cleaner/internal/logger"
	"github.com/dvloznov/sales-cleaner/internal/pipeline"
	"github.com/dvloznov/sales-cleaner/internal/table"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "clean":
		runClean(log)
	case "upload":
		runUpload(log)
	case "publish":
		runPublish(log)
	case "inspect":
		runInspect(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Sales Cleaner CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  clean     Clean a point-of-sale export into a canonical table")
	fmt.Println("  upload    Upload a local export to GCS")
	fmt.Println("  publish   Clean an export and publish it to BigQuery")
	fmt.Println("  inspect   Show the rows a publish run wrote to BigQuery")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nInputs and outputs accept local paths or gs://bucket/object URIs.")
	fmt.Println("Run 'cli <command> -h' for more information on a command.")
}

// loadConfig resolves the effective config and applies its log level.
func loadConfig(log zerolog.Logger, path string) (*config.Config, zerolog.Logger) {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("config", path).Msg("Failed to load config")
	}
	return cfg, logger.WithLevel(log, cfg.Level())
}

func delimiterFlag(fs *flag.FlagSet) *string {
	return fs.String("delimiter", ",", "Field delimiter of input and output tables")
}

func parseDelimiter(log zerolog.Logger, s string) rune {
	r := []rune(s)
	if len(r) != 1 {
		log.Fatal().Str("delimiter", s).Msg("Error: --delimiter must be a single character")
	}
	return r[0]
}

func runClean(log zerolog.Logger) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	in := fs.String("in", "dirty_cafe_sales.csv", "Source table (path or gs:// URI)")
	out := fs.String("out", "cleaned_cafe_sales.csv", "Canonical table (path or gs:// URI)")
	cfgPath := fs.String("config", os.Getenv("SALES_CLEAN_CONFIG"), "YAML config file (or set SALES_CLEAN_CONFIG)")
	delim := delimiterFlag(fs)
	fs.Parse(os.Args[2:])

	cfg, log := loadConfig(log, *cfgPath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("input", *in).Str("output", *out).Msg("Starting cleaning run")

	res, err := pipeline.CleanTable(ctx, gcsuploader.NewStorageService(), cfg, pipeline.TableJob{
		InputURI:  *in,
		OutputURI: *out,
		Delimiter: parseDelimiter(log, *delim),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Cleaning failed")
	}

	fmt.Printf("Data cleaning complete. Cleaned data saved as '%s'\n", *out)
	printSummary(log, os.Stdout, res, cfg)
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", "", "GCS bucket name")
	objectName := fs.String("object", "", "GCS object name (defaults to filename)")
	filePath := fs.String("file", "", "Path to local export")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}

	if *objectName == "" {
		*objectName = filepath.Base(*filePath)
	}

	ctx := logger.WithContext(context.Background(), log)

	log.Info().
		Str("bucket", *bucketName).
		Str("object", *objectName).
		Str("file", *filePath).
		Msg("Uploading file to GCS")

	if err := gcsuploader.NewStorageService().UploadFile(ctx, *bucketName, *objectName, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", *filePath, *bucketName, *objectName)
}

func tableFlags(fs *flag.FlagSet) (project, dataset, tbl *string) {
	project = fs.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "GCP project ID (or set GOOGLE_CLOUD_PROJECT)")
	dataset = fs.String("dataset", "sales", "BigQuery dataset ID")
	tbl = fs.String("table", "canonical_transactions", "BigQuery table ID")
	return project, dataset, tbl
}

func runPublish(log zerolog.Logger) {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)
	in := fs.String("in", "", "Source table (path or gs:// URI)")
	out := fs.String("out", "cleaned_cafe_sales.csv", "Canonical table (path or gs:// URI)")
	cfgPath := fs.String("config", os.Getenv("SALES_CLEAN_CONFIG"), "YAML config file (or set SALES_CLEAN_CONFIG)")
	project, dataset, tbl := tableFlags(fs)
	delim := delimiterFlag(fs)
	fs.Parse(os.Args[2:])

	if *in == "" || *project == "" {
		log.Fatal().Msg("Usage: cli publish -in URI -project ID [-dataset D] [-table T]")
	}

	cfg, log := loadConfig(log, *cfgPath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	repo, err := infraBQ.NewBigQueryCanonicalRepository(ctx, infraBQ.TableRef{
		ProjectID: *project,
		DatasetID: *dataset,
		TableID:   *tbl,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create repository")
	}
	defer repo.Close()

	res, err := pipeline.CleanTable(ctx, gcsuploader.NewStorageService(), cfg, pipeline.TableJob{
		InputURI:  *in,
		OutputURI: *out,
		Delimiter: parseDelimiter(log, *delim),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Cleaning failed")
	}

	if err := repo.PublishRecords(ctx, res.Report.RunID, res.Records); err != nil {
		log.Fatal().Err(err).Str("run_id", res.Report.RunID).Msg("Publish failed")
	}

	fmt.Printf("Published %d rows as run %s\n", len(res.Records), res.Report.RunID)
	printSummary(log, os.Stdout, res, cfg)
}

func runInspect(log zerolog.Logger) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	runID := fs.String("run-id", "", "Run ID to inspect")
	project, dataset, tbl := tableFlags(fs)
	fs.Parse(os.Args[2:])

	if *runID == "" || *project == "" {
		log.Fatal().Msg("Error: --run-id and --project are required")
	}

	ctx := logger.WithContext(context.Background(), log)

	repo, err := infraBQ.NewBigQueryCanonicalRepository(ctx, infraBQ.TableRef{
		ProjectID: *project,
		DatasetID: *dataset,
		TableID:   *tbl,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create repository")
	}
	defer repo.Close()

	rows, err := repo.QueryRowsByRun(ctx, *runID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to query rows")
	}

	fmt.Printf("\n=== Run %s (%d rows) ===\n\n", *runID, len(rows))
	records := make([]*domain.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	if err := table.Write(os.Stdout, records, table.WriteOptions{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to print rows")
	}
}

// printSummary prints the cleaning summary and a sample of the output.
func printSummary(log zerolog.Logger, w io.Writer, res *pipeline.Result, cfg *config.Config) {
	rep := res.Report
	fmt.Fprintln(w, "\nCleaning Summary:")
	fmt.Fprintf(w, "Run ID: %s\n", rep.RunID)
	fmt.Fprintf(w, "Original number of rows: %d\n", rep.InputRows)
	fmt.Fprintf(w, "Number of rows after cleaning: %d\n", rep.OutputRows)
	fmt.Fprintf(w, "Number of rows removed: %d\n", rep.RowsRemoved())
	fmt.Fprintf(w, "  without essential data: %d\n", rep.DroppedIncomplete)
	fmt.Fprintf(w, "  without transaction ID: %d\n", rep.DroppedMissingID)
	fmt.Fprintf(w, "  duplicate transaction ID: %d\n", rep.DroppedDuplicate)
	fmt.Fprintf(w, "Totals recomputed: %d\n", rep.TotalsRecomputed)

	if cols := rep.NulledColumns(); len(cols) > 0 {
		fmt.Fprintln(w, "\nFields set to unknown:")
		for _, col := range cols {
			fmt.Fprintf(w, "  %-16s placeholder=%d out_of_vocabulary=%d unparseable=%d\n",
				col,
				rep.NulledCount(col, pipeline.IssuePlaceholder),
				rep.NulledCount(col, pipeline.IssueOutOfVocabulary),
				rep.NulledCount(col, pipeline.IssueUnparseable))
		}
	}

	const sampleSize = 5
	sample := res.Records
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	fmt.Fprintln(w, "\nSample of cleaned data:")
	if err := table.Write(w, sample, table.WriteOptions{DateLayout: cfg.DateLayout}); err != nil {
		log.Warn().Err(err).Msg("Failed to print sample rows")
	}
}
