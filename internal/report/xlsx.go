package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

// XLSX renders the same table as CSV into a workbook sheet.
func (s *Service) XLSX(records []entity.ResumeRecord) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Resumes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range constants.ReportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.SNo)
		write(2, deref(r.Name))
		write(3, deref(r.Address))
		write(4, deref(r.Email))
		write(5, deref(r.ContactNumber))
		write(6, deref(r.LastQualification))
		write(7, deref(r.LastInstitution))
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 8)  // s. no
	_ = f.SetColWidth(sheet, "B", "B", 24) // name
	_ = f.SetColWidth(sheet, "C", "C", 40) // address
	_ = f.SetColWidth(sheet, "D", "D", 30) // email
	_ = f.SetColWidth(sheet, "E", "E", 18) // contact
	_ = f.SetColWidth(sheet, "F", "G", 32) // education

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.log.Info("report.xlsx.ok", "rows", len(records), "bytes", buf.Len())
	return buf.Bytes(), nil
}
