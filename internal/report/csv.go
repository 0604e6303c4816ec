package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

// CSV renders the canonical resume report: a header row followed by one row
// per record in batch order.
func (s *Service) CSV(records []entity.ResumeRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(constants.ReportColumns); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(rowValues(r)); err != nil {
			return nil, fmt.Errorf("csv row %d: %w", r.SNo, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}

	s.log.Info("report.csv.ok", "rows", len(records), "bytes", buf.Len())
	return buf.Bytes(), nil
}
