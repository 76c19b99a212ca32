// internal/reasoning/percentile.go
package reasoning

import "analysis-workers/internal/models"

// Percentile classifies a value against a benchmark's four reference
// points. This is an ordinal step classifier, not an interpolated
// percentile: the result is always one of 25, 50, 75, 90, 95, and is
// monotonic non-decreasing in value for a fixed benchmark.
func Percentile(value float64, benchmark models.Benchmark) int {
	switch {
	case value <= benchmark.Percentile25:
		return 25
	case value <= benchmark.Percentile50:
		return 50
	case value <= benchmark.Percentile75:
		return 75
	case value <= benchmark.Percentile90:
		return 90
	default:
		return 95
	}
}
