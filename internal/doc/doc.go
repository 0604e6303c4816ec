// Package doc turns resume file bytes into plain text. PDF and DOCX are the
// only supported formats; anything else is rejected before decoding starts.
package doc

import (
	"fmt"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
)

// Result is the outcome of decoding one file.
type Result struct {
	Text   string
	Format string // "PDF" | "DOCX"
	Pages  int    // PDF page count; 0 for DOCX
}

// Decode extracts plain text from a resume file, dispatching on extension.
func Decode(filename string, data []byte) (Result, error) {
	ext := constants.ExtOf(filename)
	switch ext {
	case "pdf":
		text, pages, err := decodePDF(data)
		if err != nil {
			return Result{}, fmt.Errorf("decode pdf %s: %w", filename, err)
		}
		return Result{Text: text, Format: constants.MapExtToFormat(ext), Pages: pages}, nil
	case "docx":
		text, err := decodeDOCX(data)
		if err != nil {
			return Result{}, fmt.Errorf("decode docx %s: %w", filename, err)
		}
		return Result{Text: text, Format: constants.MapExtToFormat(ext)}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", common.ErrUnsupportedMedia, filename)
	}
}
