package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
)

// ExtractJSONBlock recovers a JSON object from a model reply that wrapped it
// in markdown fences or surrounding prose. Returns the trimmed input when no
// tighter block is found.
func ExtractJSONBlock(content string) []byte {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			return []byte(s[start : end+1])
		}
	}
	return []byte(s)
}

// SanitizeFields normalizes a model response so the strict schema can pass:
// it drops unknown keys and null/empty/non-string values and trims the
// strings that survive. Returns the cleaned JSON plus the touched keys for
// logging.
func SanitizeFields(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	known := make(map[string]struct{}, len(FieldKeys))
	for _, k := range FieldKeys {
		known[k] = struct{}{}
	}

	var dropped []string
	for k, v := range m {
		if _, ok := known[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, dropped, nil
}

// ParseFields decodes validated JSON into the record shape. Missing keys,
// nulls, and whitespace-only values all become absent fields, keeping the
// no-empty-string invariant on ResumeFields.
func ParseFields(raw []byte) (entity.ResumeFields, error) {
	var out entity.ResumeFields
	if err := json.Unmarshal(raw, &out); err != nil {
		return entity.ResumeFields{}, fmt.Errorf("unmarshal fields: %w", err)
	}
	for _, p := range []**string{
		&out.Name, &out.Address, &out.Email,
		&out.ContactNumber, &out.LastQualification, &out.LastInstitution,
	} {
		cleanField(p)
	}
	return out, nil
}

func cleanField(p **string) {
	if *p == nil {
		return
	}
	s := strings.TrimSpace(**p)
	if s == "" {
		*p = nil
		return
	}
	*p = &s
}
