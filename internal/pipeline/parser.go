// Package pipeline coordinates decoding and field extraction for resume
// documents: decode, then the model extractor when configured, then the
// rule-based extractor as the fallback.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/doc"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
	"github.com/joseph-ayodele/resume-analyzer/internal/fields"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm"
)

// Parser extracts fields from one resume file.
type Parser struct {
	Logger *slog.Logger
	Rules  *fields.Extractor
	Model  llm.FieldExtractor // nil disables the model path
}

func NewParser(logger *slog.Logger, rules *fields.Extractor, model llm.FieldExtractor) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{Logger: logger, Rules: rules, Model: model}
}

// ParseResume decodes the file and extracts fields. A document that decodes
// to no text yields an empty field set, not an error; only a decode failure
// is an error, and the batch loop downgrades that to an empty row.
func (p *Parser) ParseResume(ctx context.Context, filename string, data []byte) (entity.ResumeFields, constants.ExtractorKind, error) {
	res, err := doc.Decode(filename, data)
	if err != nil {
		return entity.ResumeFields{}, constants.ExtractorNone, err
	}

	text := fields.Normalize(res.Text)
	if text == "" {
		p.Logger.Warn("parser.no_text", "file", filename, "format", res.Format)
		return entity.ResumeFields{}, constants.ExtractorNone, nil
	}
	p.Logger.Info("parser.decoded",
		"file", filename, "format", res.Format, "pages", res.Pages, "chars", len(text))

	if p.Model != nil {
		flds, _, err := p.Model.ExtractFields(ctx, llm.ExtractRequest{Text: text, Filename: filename})
		if err == nil {
			p.Logger.Info("parser.model_extract.ok", "file", filename)
			return flds, constants.ExtractorLLM, nil
		}
		if errors.Is(err, common.ErrUnavailable) {
			p.Logger.Info("parser.model_extract.fallback", "file", filename, "error", err)
		} else {
			p.Logger.Error("parser.model_extract.unexpected", "file", filename, "error", err)
		}
	}

	return p.Rules.Extract(text), constants.ExtractorHeuristic, nil
}
