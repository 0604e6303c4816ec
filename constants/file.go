package constants

import (
	"path/filepath"
	"strings"
)

// FileTypes holds the allowed file types for the format field on a parsed document.
var FileTypes = []string{"PDF", "DOCX"}

// AllowedExtensions holds the resume file extensions eligible for extraction.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
}

// ArchiveExtension is the only accepted upload container format.
const ArchiveExtension = "zip"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ExtOf returns the normalized extension of a file name.
func ExtOf(name string) string {
	return NormalizeExt(filepath.Ext(name))
}

// IsResumeFile reports whether the file name carries an eligible extension.
func IsResumeFile(name string) bool {
	_, ok := AllowedExtensions[ExtOf(name)]
	return ok
}

// MapExtToFormat maps a normalized extension to its canonical format label,
// or "" when the extension is not supported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "PDF"
	case "docx":
		return "DOCX"
	default:
		return ""
	}
}
