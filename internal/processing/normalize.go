// internal/processing/normalize.go
package processing

import (
	"fmt"

	"analysis-workers/internal/models"
)

// Normalize maps cleaned top-level fields onto [0,1] signals. Numeric
// fields use a fixed divisor of 100 (not the observed data range),
// booleans map to 1/0, and arrays produce two derived signals: a
// length signal and a non-nil completeness fraction. Other types are
// skipped, not normalized.
func Normalize(cleaned map[string]interface{}) map[string]float64 {
	normalized := make(map[string]float64)

	for key, value := range cleaned {
		switch v := value.(type) {
		case bool:
			if v {
				normalized[key] = 1
			} else {
				normalized[key] = 0
			}

		case []interface{}:
			normalized[fmt.Sprintf("%s_count", key)] = models.Clamp01(float64(len(v)) / 100)
			normalized[fmt.Sprintf("%s_completeness", key)] = arrayCompleteness(v)

		default:
			if n, ok := toFloat(value); ok {
				normalized[key] = models.Clamp01(n / 100)
			}
		}
	}

	return normalized
}

func arrayCompleteness(arr []interface{}) float64 {
	if len(arr) == 0 {
		return 0
	}
	nonNull := 0
	for _, elem := range arr {
		if elem != nil {
			nonNull++
		}
	}
	return float64(nonNull) / float64(len(arr))
}
