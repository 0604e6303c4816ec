package ner

import (
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/joseph-ayodele/resume-analyzer/constants"
)

// ProseRecognizer tags entities with the bundled prose model. PERSON and GPE
// labels come straight from the model (GPE maps to LOCATION); ORGANIZATION
// spans, which the bundled model does not emit, are derived from capitalized
// phrases carrying an institution or company token.
type ProseRecognizer struct{}

func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

func (r *ProseRecognizer) Recognize(text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}
	var entities []Entity
	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "PERSON":
			entities = append(entities, Entity{Text: ent.Text, Category: Person})
		case "GPE", "LOC", "LOCATION":
			entities = append(entities, Entity{Text: ent.Text, Category: Location})
		}
	}
	return append(entities, organizations(text)...), nil
}

// Proper-noun runs: a capitalized word followed by further capitalized words
// or the connectors of/the/and/for/&.
var reProperRun = regexp.MustCompile(`[A-Z][A-Za-z&.'-]*(?: (?:of|the|and|for|&|[A-Z][A-Za-z&.'-]*))*`)

// organizations scans for proper-noun phrases that carry an institution
// keyword or a company suffix, in document order.
func organizations(text string) []Entity {
	var out []Entity
	for _, run := range reProperRun.FindAllString(text, -1) {
		lower := strings.ToLower(run)
		if hasOrgToken(lower) {
			out = append(out, Entity{Text: run, Category: Organization})
		}
	}
	return out
}

func hasOrgToken(lower string) bool {
	for _, kw := range constants.InstitutionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range constants.OrgSuffixes {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
