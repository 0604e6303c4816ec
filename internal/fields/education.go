package fields

import (
	"strings"

	"github.com/joseph-ayodele/resume-analyzer/constants"
)

// extractQualification scans bottom-to-top: education sections sit near the
// end of a resume and the most recent qualification is listed last.
func extractQualification(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if containsAny(strings.ToLower(lines[i]), constants.DegreeKeywords) {
			return lines[i]
		}
	}
	return ""
}

// extractInstitution scans bottom-to-top for an institution keyword line.
// ORGANIZATION corroboration does not change the outcome for a keyword line
// (the line is returned either way); it only matters when no line matches,
// where the last recognized organization stands in.
func extractInstitution(orgs []string, lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if containsAny(strings.ToLower(lines[i]), constants.InstitutionKeywords) {
			return lines[i]
		}
	}
	if len(orgs) > 0 {
		return strings.TrimSpace(orgs[len(orgs)-1])
	}
	return ""
}
