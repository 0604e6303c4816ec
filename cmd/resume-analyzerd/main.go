package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/resume-analyzer/internal/async"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/fields"
	"github.com/joseph-ayodele/resume-analyzer/internal/history"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm/openai"
	"github.com/joseph-ayodele/resume-analyzer/internal/ner"
	"github.com/joseph-ayodele/resume-analyzer/internal/pipeline"
	"github.com/joseph-ayodele/resume-analyzer/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules := fields.NewExtractor(ner.NewProseRecognizer(), logger)

	var model llm.FieldExtractor
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
		logger.Info("model extractor disabled, using heuristics only")
	}

	parser := pipeline.NewParser(logger, rules, model)
	runner := pipeline.NewBatchRunner(logger, parser)

	var store *history.Store
	var recorder async.Recorder = async.NopRecorder{}
	if cfg.History.DSN != "" {
		var err error
		store, err = history.Open(ctx, cfg.History.DSN, logger)
		if err != nil {
			logger.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("close history store", "error", cerr)
			}
		}()
		if err := store.Ping(ctx, 5*time.Second); err != nil {
			logger.Error("history store ping failed", "error", err)
			os.Exit(1)
		}
		logger.Info("history store ready")
		recorder = async.NewRecorderQueue(store, logger,
			async.WithWorkers(cfg.History.Workers),
			async.WithQueueSize(cfg.History.QueueSize),
			async.WithRecordTimeout(cfg.History.Timeout),
		)
	}

	srv := server.NewServer(cfg, runner, store, recorder, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("resume-analyzer listening",
			"addr", cfg.Server.Addr,
			"llm_enabled", cfg.LLM.Enabled(),
			"history_enabled", cfg.History.DSN != "",
			"max_zip_size_mb", cfg.Server.MaxZipSizeMB,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	recorder.Shutdown(shutdownCtx)
}
