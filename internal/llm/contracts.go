package llm

import (
	"context"

	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

// FieldKeys are the six output keys the model must return, in report order.
var FieldKeys = []string{
	"name",
	"address",
	"email",
	"contact_number",
	"last_qualification",
	"last_institution",
}

// ExtractRequest carries one document's normalized text into the model
// extractor.
type ExtractRequest struct {
	Text     string
	Filename string
}

// FieldExtractor is the interface the pipeline depends on. Implementations
// return the extracted fields plus the raw model JSON for auditing. Any
// error (network, schema, parse, disabled configuration) means the caller
// must fall back to the heuristic extractor; no error is ever surfaced past
// the pipeline.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (entity.ResumeFields, []byte, error)
}
