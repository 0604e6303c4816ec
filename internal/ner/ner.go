package ner

// Category classifies a recognized span.
type Category string

const (
	Person       Category = "PERSON"
	Organization Category = "ORGANIZATION"
	Location     Category = "LOCATION"
)

// Entity is a text span tagged with a semantic category. Span text is a
// verbatim substring of the input.
type Entity struct {
	Text     string
	Category Category
}

// Recognizer tags named entities in normalized text. Implementations must be
// deterministic for a given input and model version, may return zero
// entities, and report spans of the same category in document order.
type Recognizer interface {
	Recognize(text string) ([]Entity, error)
}
