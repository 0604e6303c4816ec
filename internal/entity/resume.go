package entity

import (
	"github.com/joseph-ayodele/resume-analyzer/constants"
)

// ResumeFields holds the six extracted resume fields for transfer between
// layers. A nil member means the extractor produced no value; empty strings
// are never stored.
type ResumeFields struct {
	Name              *string `json:"name"`
	Address           *string `json:"address"`
	Email             *string `json:"email"`
	ContactNumber     *string `json:"contact_number"`
	LastQualification *string `json:"last_qualification"`
	LastInstitution   *string `json:"last_institution"`
}

// IsEmpty reports whether no field carries a value.
func (f ResumeFields) IsEmpty() bool {
	return f.Name == nil && f.Address == nil && f.Email == nil &&
		f.ContactNumber == nil && f.LastQualification == nil && f.LastInstitution == nil
}

// ResumeRecord is one report row: the 1-based position of the document in
// its archive plus whatever fields extraction produced. Records are created
// once and never mutated.
type ResumeRecord struct {
	SNo       int                     `json:"s_no"`
	Filename  string                  `json:"filename,omitempty"`
	Extractor constants.ExtractorKind `json:"extractor,omitempty"`
	ResumeFields
}

// StrPtr returns a pointer to s, or nil when s is empty. Extraction paths
// use it to keep the no-value invariant on ResumeFields.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
