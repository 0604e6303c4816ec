// Package async decouples batch-history persistence from request handling:
// finished batches are queued and written by background workers so a slow
// database never delays a download response.
package async

import (
	"context"
	"time"

	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

// Job carries one finished batch to the history store.
type Job struct {
	Batch       entity.Batch
	Records     []entity.ResumeRecord
	SubmittedAt time.Time
}

type Recorder interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// NopRecorder drops every job. Used when no history DSN is configured so
// callers never have to branch.
type NopRecorder struct{}

func (NopRecorder) Enqueue(context.Context, Job) error { return nil }
func (NopRecorder) Shutdown(context.Context)           {}
