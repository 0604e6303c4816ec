package llm

// BuildResumeJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is sent to the model as an output constraint and used
// locally to validate the response. Every key accepts string or null so a
// sparse resume still validates; unknown keys are rejected.
func BuildResumeJSONSchema() map[string]any {
	props := map[string]any{}
	for _, key := range FieldKeys {
		props[key] = map[string]any{"type": []string{"string", "null"}}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
