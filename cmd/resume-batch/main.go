package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/archive"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
	"github.com/joseph-ayodele/resume-analyzer/internal/fields"
	"github.com/joseph-ayodele/resume-analyzer/internal/history"
	"github.com/joseph-ayodele/resume-analyzer/internal/ingest"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm/openai"
	"github.com/joseph-ayodele/resume-analyzer/internal/ner"
	"github.com/joseph-ayodele/resume-analyzer/internal/pipeline"
	"github.com/joseph-ayodele/resume-analyzer/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

type app struct {
	logger   *slog.Logger
	unpacker *archive.Unpacker
	runner   *pipeline.BatchRunner
	reports  *report.Service
	store    *history.Store // nil unless -history was given
	format   string
}

func main() {
	var (
		zipPath    = flag.String("zip", "", "zip archive of resumes to process")
		watchDir   = flag.String("watch", "", "directory to watch for new zip archives")
		out        = flag.String("out", "", "output report path (defaults to alongside the archive)")
		format     = flag.String("format", "csv", "report format: csv or xlsx")
		historyDSN = flag.String("history", "", "record batches to this store (sqlite path or postgres DSN)")
		useLLM     = flag.Bool("llm", false, "try the model extractor before heuristics (needs OPENAI_API_KEY)")
		debounce   = flag.Duration("debounce", 2*time.Second, "settle interval before a watched archive is processed")
	)
	flag.Parse()

	if (*zipPath == "") == (*watchDir == "") {
		printError("Error: exactly one of -zip or -watch is required\n")
		os.Exit(1)
	}
	if *format != "csv" && *format != "xlsx" {
		printError("Error: -format must be csv or xlsx\n")
		os.Exit(1)
	}

	// Text output with time and level dropped reads cleanly in a terminal.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}
	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var model llm.FieldExtractor
	if *useLLM {
		if cfg.LLM.Enabled() {
			model = openai.NewClient(openai.Config{
				APIKey:      cfg.LLM.APIKey,
				BaseURL:     cfg.LLM.BaseURL,
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				MaxTokens:   cfg.LLM.MaxTokens,
				Timeout:     cfg.LLM.Timeout,
			}, logger)
			logger.Info("model extractor enabled", "model", cfg.LLM.Model)
		} else {
			logger.Warn("-llm requested but OPENAI_API_KEY is not set, using heuristics only")
		}
	}

	rules := fields.NewExtractor(ner.NewProseRecognizer(), logger)
	parser := pipeline.NewParser(logger, rules, model)

	a := &app{
		logger:   logger,
		unpacker: archive.NewUnpacker(logger),
		runner:   pipeline.NewBatchRunner(logger, parser),
		reports:  report.NewService(logger),
		format:   *format,
	}

	if *historyDSN != "" {
		store, err := history.Open(ctx, *historyDSN, logger)
		if err != nil {
			logger.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("close history store", "error", cerr)
			}
		}()
		a.store = store
	}

	if *watchDir != "" {
		runWatch(ctx, a, *watchDir, *debounce)
		return
	}

	outPath := *out
	if outPath == "" {
		outPath = deriveOut(*zipPath, *format)
	}
	result, err := a.processArchive(ctx, *zipPath, outPath, "cli")
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Resumes: %d\n", len(result.Records))
	fmt.Printf("- Failures: %d\n", result.Failed)
	fmt.Printf("- Status: %s\n", result.Status())
	fmt.Printf("- Output: %s\n", outPath)
}

func runWatch(ctx context.Context, a *app, dir string, debounce time.Duration) {
	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:    []string{dir},
		Debounce: debounce,
	})
	if err != nil {
		printError("Error: starting watcher: %v\n", err)
		os.Exit(1)
	}
	a.logger.Info("watching for archives", "dir", dir, "debounce", debounce.String())

	go func() {
		// Watcher failures are logged at the source; draining keeps it unblocked.
		for range errCh {
		}
	}()

	for p := range evCh {
		outPath := deriveOut(p, a.format)
		result, err := a.processArchive(ctx, p, outPath, "watch")
		if err != nil {
			a.logger.Error("archive processing failed", "archive", p, "error", err)
			continue
		}
		fmt.Printf("Processed %s: %d resumes (%d failed) -> %s\n",
			filepath.Base(p), len(result.Records), result.Failed, outPath)
	}
}

// processArchive takes one archive from zip bytes to a written report and,
// when a store is attached, records the batch.
func (a *app) processArchive(ctx context.Context, zipPath, outPath, source string) (pipeline.BatchResult, error) {
	started := time.Now().UTC()

	if constants.ExtOf(zipPath) != constants.ArchiveExtension {
		return pipeline.BatchResult{}, fmt.Errorf("%w: %s", common.ErrUnsupportedMedia, zipPath)
	}
	data, err := os.ReadFile(zipPath)
	if err != nil {
		return pipeline.BatchResult{}, fmt.Errorf("reading archive: %w", err)
	}

	files, err := a.unpacker.Extract(data)
	if err != nil {
		return pipeline.BatchResult{}, err
	}

	batchID := uuid.New()
	result := a.runner.Run(common.WithBatchID(ctx, batchID.String()), files)

	var payload []byte
	switch a.format {
	case "xlsx":
		payload, err = a.reports.XLSX(result.Records)
	default:
		payload, err = a.reports.CSV(result.Records)
	}
	if err != nil {
		return pipeline.BatchResult{}, fmt.Errorf("generating report: %w", err)
	}
	if err := os.WriteFile(outPath, payload, 0644); err != nil {
		return pipeline.BatchResult{}, fmt.Errorf("writing report: %w", err)
	}

	a.logger.Info("batch complete",
		"archive", zipPath,
		"resumes", len(result.Records),
		"failed", result.Failed,
		"status", string(result.Status()),
		"output", outPath,
	)

	if a.store != nil {
		b := entity.Batch{
			ID:          batchID,
			Source:      source,
			ArchiveName: filepath.Base(zipPath),
			ResumeCount: len(result.Records),
			FailedCount: result.Failed,
			Status:      result.Status(),
			StartedAt:   started,
			FinishedAt:  time.Now().UTC(),
		}
		if err := a.store.RecordBatch(ctx, b, result.Records); err != nil {
			a.logger.Error("recording batch failed", "batch_id", b.ID.String(), "error", err)
		}
	}
	return result, nil
}

// deriveOut places the report next to the archive: resumes.zip becomes
// resumes_report.csv.
func deriveOut(zipPath, format string) string {
	base := strings.TrimSuffix(zipPath, filepath.Ext(zipPath))
	return base + "_report." + format
}
