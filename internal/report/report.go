// Package report renders a batch of extraction results in the formats
// clients download.
package report

import (
	"log/slog"
	"strconv"

	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

// Service produces tabular report bytes from resume records.
type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log}
}

// rowValues flattens one record into report-column order. Absent fields
// render as empty cells.
func rowValues(r entity.ResumeRecord) []string {
	return []string{
		strconv.Itoa(r.SNo),
		deref(r.Name),
		deref(r.Address),
		deref(r.Email),
		deref(r.ContactNumber),
		deref(r.LastQualification),
		deref(r.LastInstitution),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
