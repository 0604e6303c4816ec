package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/async"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
	"github.com/joseph-ayodele/resume-analyzer/internal/pipeline"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleDownloadCSV(c *gin.Context) {
	records, ok := s.runArchive(c)
	if !ok {
		return
	}
	payload, err := s.reports.CSV(records)
	if err != nil {
		s.logger.Error("upload.report_failed", "format", "csv", "err", err)
		s.fail(c, http.StatusInternalServerError, "report generation failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename=resume_report.csv`)
	c.Data(http.StatusOK, "text/csv", payload)
}

func (s *Server) handleDownloadXLSX(c *gin.Context) {
	records, ok := s.runArchive(c)
	if !ok {
		return
	}
	payload, err := s.reports.XLSX(records)
	if err != nil {
		s.logger.Error("upload.report_failed", "format", "xlsx", "err", err)
		s.fail(c, http.StatusInternalServerError, "report generation failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename=resume_report.xlsx`)
	c.Data(http.StatusOK, xlsxContentType, payload)
}

// runArchive validates the multipart upload, extracts the archive and runs
// the extraction pipeline over every resume in it. On failure the error
// response has already been written and ok is false.
func (s *Server) runArchive(c *gin.Context) (records []entity.ResumeRecord, ok bool) {
	started := time.Now().UTC()
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.fail(c, http.StatusBadRequest, `multipart field "file" is required`)
		return nil, false
	}
	defer func() {
		_ = file.Close()
	}()

	if constants.ExtOf(header.Filename) != constants.ArchiveExtension {
		s.fail(c, http.StatusBadRequest, common.ErrUnsupportedMedia.Error())
		return nil, false
	}

	maxBytes := s.cfg.Server.MaxZipSizeMB << 20
	if header.Size > maxBytes {
		s.fail(c, http.StatusRequestEntityTooLarge, s.tooLargeMessage())
		return nil, false
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		s.logger.Error("upload.read_failed", "archive", header.Filename, "err", err)
		s.fail(c, http.StatusInternalServerError, "reading the upload failed")
		return nil, false
	}
	if int64(len(data)) > maxBytes {
		s.fail(c, http.StatusRequestEntityTooLarge, s.tooLargeMessage())
		return nil, false
	}

	batchID := uuid.New()
	ctx = common.WithBatchID(ctx, batchID.String())
	s.logger.Info("upload.received",
		"archive", header.Filename,
		"bytes", len(data),
		"batch_id", batchID.String(),
		"request_id", common.RequestIDFromContext(ctx),
	)

	files, err := s.unpacker.Extract(data)
	if err != nil {
		s.failWith(c, err)
		return nil, false
	}

	result := s.runner.Run(ctx, files)
	s.logger.Info("upload.processed",
		"archive", header.Filename,
		"batch_id", batchID.String(),
		"resumes", len(result.Records),
		"failed", result.Failed,
		"status", string(result.Status()),
	)

	s.recordBatch(c, batchID, "upload", header.Filename, started, result)
	return result.Records, true
}

func (s *Server) tooLargeMessage() string {
	return fmt.Sprintf("file size exceeds maximum allowed size of %dMB", s.cfg.Server.MaxZipSizeMB)
}

// failWith maps archive-level sentinels onto HTTP statuses. Anything
// unexpected becomes an opaque 500.
func (s *Server) failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrArchiveTooLarge):
		s.fail(c, http.StatusRequestEntityTooLarge, s.tooLargeMessage())
	case errors.Is(err, common.ErrCorruptArchive),
		errors.Is(err, common.ErrNoResumeFiles),
		errors.Is(err, common.ErrUnsupportedMedia):
		s.fail(c, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("upload.failed", "err", err)
		s.fail(c, http.StatusInternalServerError, "an unexpected error occurred while processing the file")
	}
}

// recordBatch hands the finished batch to the history recorder. Persistence
// never delays or fails the response.
func (s *Server) recordBatch(c *gin.Context, id uuid.UUID, source, archiveName string, started time.Time, result pipeline.BatchResult) {
	job := async.Job{
		Batch: entity.Batch{
			ID:          id,
			Source:      source,
			ArchiveName: archiveName,
			ResumeCount: len(result.Records),
			FailedCount: result.Failed,
			Status:      result.Status(),
			StartedAt:   started,
			FinishedAt:  time.Now().UTC(),
		},
		Records:     result.Records,
		SubmittedAt: time.Now(),
	}
	if err := s.recorder.Enqueue(c.Request.Context(), job); err != nil {
		s.logger.Error("history.enqueue_failed", "batch_id", job.Batch.ID.String(), "err", err)
	}
}
