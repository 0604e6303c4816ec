package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/archive"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

// BatchResult is the outcome of one archive run.
type BatchResult struct {
	Records []entity.ResumeRecord
	Failed  int
}

// Status summarizes the run for the history store.
func (r BatchResult) Status() constants.BatchStatus {
	switch {
	case len(r.Records) == 0 || r.Failed == len(r.Records):
		return constants.BatchStatusFailed
	case r.Failed > 0:
		return constants.BatchStatusPartial
	default:
		return constants.BatchStatusDone
	}
}

// BatchRunner processes the files of an unpacked archive in order.
type BatchRunner struct {
	Logger *slog.Logger
	Parser *Parser
}

func NewBatchRunner(logger *slog.Logger, parser *Parser) *BatchRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchRunner{Logger: logger, Parser: parser}
}

// Run parses every file into a numbered record. Rows keep archive order and
// 1-based numbering; a document that fails keeps its row with every field
// empty so the report stays aligned with the upload. The batch itself never
// aborts on a bad document.
func (b *BatchRunner) Run(ctx context.Context, files []archive.File) BatchResult {
	logger := b.Logger
	if id := common.BatchIDFromContext(ctx); id != "" {
		logger = logger.With("batch_id", id)
	}

	var res BatchResult
	res.Records = make([]entity.ResumeRecord, 0, len(files))

	for i, f := range files {
		sno := i + 1
		logger.Info("batch.file.start", "s_no", sno, "total", len(files), "file", f.Name)

		flds, kind, err := b.parseOne(ctx, f)
		if err != nil {
			logger.Error("batch.file.failed", "s_no", sno, "file", f.Name, "error", err)
			res.Records = append(res.Records, entity.ResumeRecord{
				SNo:       sno,
				Filename:  f.Name,
				Extractor: constants.ExtractorNone,
			})
			res.Failed++
			continue
		}

		res.Records = append(res.Records, entity.ResumeRecord{
			SNo:          sno,
			Filename:     f.Name,
			Extractor:    kind,
			ResumeFields: flds,
		})
	}
	return res
}

// parseOne isolates a single document: a panic anywhere in decoding or
// extraction becomes that document's error instead of taking down the batch.
func (b *BatchRunner) parseOne(ctx context.Context, f archive.File) (flds entity.ResumeFields, kind constants.ExtractorKind, err error) {
	defer func() {
		if r := recover(); r != nil {
			flds = entity.ResumeFields{}
			kind = constants.ExtractorNone
			err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()
	return b.Parser.ParseResume(ctx, f.Name, f.Data)
}
