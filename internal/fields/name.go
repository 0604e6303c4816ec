package fields

import (
	"strings"
	"unicode"
)

// Bounds for the no-entity fallback: a header line of 2-4 purely alphabetic
// words within the first few lines of the document.
const (
	nameWindow   = 5
	nameMinWords = 2
	nameMaxWords = 4
)

// extractName returns the first PERSON entity in document order, or falls
// back to scanning the top of the document for a header-shaped line.
func extractName(persons []string, lines []string) string {
	if len(persons) > 0 {
		return strings.TrimSpace(persons[0])
	}
	for i, line := range lines {
		if i == nameWindow {
			break
		}
		if isNameLine(line) {
			return line
		}
	}
	return ""
}

func isNameLine(line string) bool {
	words := strings.Fields(line)
	if len(words) < nameMinWords || len(words) > nameMaxWords {
		return false
	}
	for _, w := range words {
		w = strings.ReplaceAll(w, ".", "")
		if w == "" || !isAlpha(w) {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
