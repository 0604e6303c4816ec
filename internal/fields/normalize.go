package fields

import (
	"regexp"
	"strings"
)

var (
	reSpaceRun   = regexp.MustCompile(`[^\S\n]+`)
	reNewlineRun = regexp.MustCompile(`\n+`)
)

// Normalize collapses whitespace runs to single spaces while keeping the
// newline as the structural delimiter, since every heuristic downstream
// works line-by-line. Pass one collapses horizontal whitespace and trims
// line edges, pass two collapses newline runs. Idempotent; empty input
// yields empty output.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reSpaceRun.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	s = strings.Join(lines, "\n")
	s = reNewlineRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
