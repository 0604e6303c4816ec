package fields

import (
	"regexp"
	"strings"
	"unicode"
)

// Candidate patterns in fixed priority order: international with optional
// country code, North-American, then a bare digit run. The priority order is
// a behavioral contract.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?\(?\d{1,4}\)?[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\d{10,15}`),
}

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// extractContactNumber returns the first match carrying 7-15 digits, in its
// original form. Separators and a leading + never count toward the filter.
func extractContactNumber(text string) string {
	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if n := digitCount(match); n >= phoneMinDigits && n <= phoneMaxDigits {
				return strings.TrimSpace(match)
			}
		}
	}
	return ""
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
