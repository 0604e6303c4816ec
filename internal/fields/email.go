package fields

import "regexp"

var reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// extractEmail returns the first address-shaped match verbatim. No semantic
// validation beyond the pattern.
func extractEmail(text string) string {
	return reEmail.FindString(text)
}
