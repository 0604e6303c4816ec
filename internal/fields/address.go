package fields

import (
	"strings"

	"github.com/joseph-ayodele/resume-analyzer/constants"
)

// extractAddress returns the first line (top-to-bottom) containing a
// recognized LOCATION span, entities tried in detection order within each
// line. Only when no entity corroborates any line does the keyword tier run.
func extractAddress(locations []string, lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, loc := range locations {
			if loc != "" && strings.Contains(lower, strings.ToLower(loc)) {
				return line
			}
		}
	}
	for _, line := range lines {
		if containsAny(strings.ToLower(line), constants.AddressKeywords) {
			return line
		}
	}
	return ""
}
