package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The resume schema is fixed, so it compiles once at package init.
var resumeSchema = compileResumeSchema()

func compileResumeSchema() *jsonschema.Schema {
	b, err := json.Marshal(BuildResumeJSONSchema())
	if err != nil {
		panic(fmt.Errorf("marshal resume schema: %w", err))
	}
	return jsonschema.MustCompileString("resume.schema.json", string(b))
}

// ValidateResponse checks a raw model response against the resume schema.
func ValidateResponse(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := resumeSchema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
