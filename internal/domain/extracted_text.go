package domain

import "encoding/json"

// ExtractedTextValue decodes the export's extracted_text field, which older
// exports wrote as a single string and newer ones as a list of strings.
// Non-string entries and null are tolerated as empty.
type ExtractedTextValue []string

// UnmarshalJSON accepts a string, a list of strings, or null.
func (v *ExtractedTextValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*v = ExtractedTextValue{single}
		} else {
			*v = nil
		}
		return nil
	}

	var many []any
	if err := json.Unmarshal(data, &many); err == nil {
		out := make(ExtractedTextValue, 0, len(many))
		for _, item := range many {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		*v = out
		return nil
	}

	// Wrong-typed field: treat as absent rather than failing the record.
	*v = nil
	return nil
}

// MarshalJSON writes a single string when there is exactly one text, keeping
// round-tripped exports close to their input shape.
func (v ExtractedTextValue) MarshalJSON() ([]byte, error) {
	switch len(v) {
	case 0:
		return []byte(`""`), nil
	case 1:
		return json.Marshal(v[0])
	default:
		return json.Marshal([]string(v))
	}
}
