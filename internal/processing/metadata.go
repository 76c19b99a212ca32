// internal/processing/metadata.go
package processing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"analysis-workers/internal/models"
)

// RecordCount counts recursive elements: arrays count by length,
// objects recurse into their values, scalars count one.
func RecordCount(data map[string]interface{}) int {
	count := 0
	for _, value := range data {
		count += countValue(value)
	}
	return count
}

func countValue(value interface{}) int {
	switch v := value.(type) {
	case []interface{}:
		return len(v)
	case map[string]interface{}:
		return RecordCount(v)
	default:
		return 1
	}
}

// Completeness is the fraction of top-level keys holding a non-empty
// value. Judged against the raw input so dropped keys still count.
func Completeness(raw map[string]interface{}) float64 {
	if len(raw) == 0 {
		return 0
	}

	nonEmpty := 0
	for _, value := range raw {
		if !isEmptyValue(value) {
			nonEmpty++
		}
	}
	return float64(nonEmpty) / float64(len(raw))
}

func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	default:
		return false
	}
}

// Complexity is a weighted recursive sum over top-level fields: arrays
// contribute len*0.1, nested objects half their own complexity, and
// scalars 0.01. Clamped to [0,1].
func Complexity(data map[string]interface{}) float64 {
	return models.Clamp01(rawComplexity(data))
}

func rawComplexity(data map[string]interface{}) float64 {
	total := 0.0
	for _, value := range data {
		switch v := value.(type) {
		case []interface{}:
			total += float64(len(v)) * 0.1
		case map[string]interface{}:
			total += rawComplexity(v) * 0.5
		default:
			total += 0.01
		}
	}
	return total
}

// Quality combines completeness, anomaly count, and a complexity
// sweet-spot bonus. Clamped to [0,1].
func Quality(completeness, complexity float64, anomalyCount int) float64 {
	complexityTerm := 0.1
	if complexity > 0.2 && complexity < 0.8 {
		complexityTerm = 1.0
	}

	quality := 0.5*completeness +
		0.3*(float64(10-anomalyCount)/10) +
		0.2*complexityTerm

	return models.Clamp01(quality)
}

// Date layouts accepted for *date*-named string fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// DetectAnomalies scans the cleaned top-level fields and returns
// human-readable anomaly strings. Anomalies are advisory only: they
// lower the quality score but never block processing.
func DetectAnomalies(cleaned map[string]interface{}) []string {
	var anomalies []string

	if _, ok := cleaned["tenantId"]; !ok {
		anomalies = append(anomalies, "missing required field: tenantId")
	}

	keys := make([]string, 0, len(cleaned))
	for k := range cleaned {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := cleaned[key]
		lowerKey := strings.ToLower(key)

		if strings.Contains(lowerKey, "date") {
			if s, ok := value.(string); ok && !parsesAsDate(s) {
				anomalies = append(anomalies, fmt.Sprintf("field %s has unparseable date value: %s", key, s))
			}
		}

		if n, ok := toFloat(value); ok {
			if n < 0 && !strings.Contains(lowerKey, "delta") && !strings.Contains(lowerKey, "change") {
				anomalies = append(anomalies, fmt.Sprintf("field %s has unexpected negative value: %v", key, n))
			}
			if n > 1000000 {
				anomalies = append(anomalies, fmt.Sprintf("field %s exceeds plausible magnitude: %v", key, n))
			}
		}
	}

	return anomalies
}

func parsesAsDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
