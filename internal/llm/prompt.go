package llm

import (
	"strings"
)

// MaxPromptChars bounds how much resume text goes into the user prompt.
const MaxPromptChars = 3000

// BuildSystemPrompt composes the fixed instruction message. The key list and
// the null convention are load-bearing: the schema validator and the
// sanitizer both assume exactly these keys.
func BuildSystemPrompt() string {
	return strings.Join([]string{
		"You are a resume parsing assistant.",
		"Extract the requested fields from the resume text.",
		"Return ONLY valid JSON with exactly these keys: " + strings.Join(FieldKeys, ", ") + ".",
		"Use null for any value not present in the text.",
		"Do not invent values and do not add extra keys.",
	}, " ")
}

// BuildUserPrompt attaches the filename hint and the truncated resume text.
func BuildUserPrompt(text, filename string) string {
	var b strings.Builder
	b.WriteString("Filename: ")
	b.WriteString(filename)
	b.WriteString("\n\nResume text (first ~3k chars):\n")
	b.WriteString(Truncate(text, MaxPromptChars))
	return b.String()
}

// Truncate clips s to at most max bytes.
func Truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
