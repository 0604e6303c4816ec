package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-analyzer/constants"
)

// Batch summarizes one processed archive for the history store.
type Batch struct {
	ID          uuid.UUID             `json:"id"`
	Source      string                `json:"source"` // upload | cli | watch
	ArchiveName string                `json:"archive_name"`
	ResumeCount int                   `json:"resume_count"`
	FailedCount int                   `json:"failed_count"`
	Status      constants.BatchStatus `json:"status"`
	StartedAt   time.Time             `json:"started_at"`
	FinishedAt  time.Time             `json:"finished_at"`
}
