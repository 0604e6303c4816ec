package fields

import (
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
	"github.com/joseph-ayodele/resume-analyzer/internal/ner"
)

// Extractor is the rule-based field extractor: named-entity recognition plus
// a battery of field-specific heuristics over normalized, line-oriented
// text. It is a pure function of its input and the recognizer model; no
// state is kept between documents.
type Extractor struct {
	rec ner.Recognizer
	log *slog.Logger
}

func NewExtractor(rec ner.Recognizer, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{rec: rec, log: log}
}

// Extract normalizes the text, runs recognition once, and applies every
// heuristic. A recognizer failure downgrades to the regex/keyword paths
// instead of failing the document.
func (e *Extractor) Extract(text string) entity.ResumeFields {
	normalized := Normalize(text)
	if normalized == "" {
		return entity.ResumeFields{}
	}
	lines := strings.Split(normalized, "\n")

	entities, err := e.rec.Recognize(normalized)
	if err != nil {
		e.log.Warn("fields.recognize.failed", "error", err)
		entities = nil
	}
	var persons, orgs, locations []string
	for _, en := range entities {
		switch en.Category {
		case ner.Person:
			persons = append(persons, en.Text)
		case ner.Organization:
			orgs = append(orgs, en.Text)
		case ner.Location:
			locations = append(locations, en.Text)
		}
	}

	return entity.ResumeFields{
		Name:              entity.StrPtr(extractName(persons, lines)),
		Address:           entity.StrPtr(extractAddress(locations, lines)),
		Email:             entity.StrPtr(extractEmail(normalized)),
		ContactNumber:     entity.StrPtr(extractContactNumber(normalized)),
		LastQualification: entity.StrPtr(extractQualification(lines)),
		LastInstitution:   entity.StrPtr(extractInstitution(orgs, lines)),
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
