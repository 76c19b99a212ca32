// internal/processing/clean.go
package processing

import "strings"

// Clean recursively drops nil values, blank strings, and empty
// collections; trims strings; filters nil/blank array elements; and
// recurses into nested maps, dropping any nested map that becomes empty
// after cleaning. Clean is idempotent: Clean(Clean(x)) == Clean(x).
func Clean(raw map[string]interface{}) map[string]interface{} {
	cleaned := make(map[string]interface{}, len(raw))

	for key, value := range raw {
		if v, ok := cleanValue(value); ok {
			cleaned[key] = v
		}
	}

	return cleaned
}

// cleanValue returns the cleaned value and whether it should be kept.
func cleanValue(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false

	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, false
		}
		return trimmed, true

	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, elem := range v {
			if cleanedElem, ok := cleanValue(elem); ok {
				out = append(out, cleanedElem)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true

	case map[string]interface{}:
		nested := Clean(v)
		if len(nested) == 0 {
			return nil, false
		}
		return nested, true

	default:
		return v, true
	}
}
