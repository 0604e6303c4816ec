package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/fields"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm/openai"
	"github.com/joseph-ayodele/resume-analyzer/internal/ner"
	"github.com/joseph-ayodele/resume-analyzer/internal/pipeline"
)

// extractprobe runs field extraction on a single resume and prints the
// result, useful for checking what either extractor makes of one document.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "extractprobe <resume.pdf|resume.docx>")
		os.Exit(2)
	}
	path := os.Args[1]

	_ = godotenv.Load()
	cfg := common.LoadConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

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
	}

	rules := fields.NewExtractor(ner.NewProseRecognizer(), logger)
	parser := pipeline.NewParser(logger, rules, model)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	flds, kind, err := parser.ParseResume(ctx, filepath.Base(path), data)
	dur := time.Since(start)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	logger.Info("extraction OK",
		"extractor", string(kind),
		"empty", flds.IsEmpty(),
		"duration_ms", dur.Milliseconds(),
	)

	pretty, err := json.MarshalIndent(flds, "", "  ")
	if err != nil {
		logger.Error("marshal fields", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(pretty))
}
