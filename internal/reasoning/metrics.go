// internal/reasoning/metrics.go
package reasoning

import (
	"strings"

	"analysis-workers/internal/models"
)

// Trend classification needs the score delta to exceed this band.
const trendBand = 5.0

// CalculateMetrics scores the analysis on a 0-100 scale, scores each
// dimension from its matching metrics, buckets every benchmarked metric,
// and classifies the trend against historical overall scores.
func CalculateMetrics(data models.ProcessedData, benchmarks []models.Benchmark, historicalScores []float64) models.AnalysisMetrics {
	avgSig := averageSignificance(data.Structured.Patterns)
	overallScore := models.ClampScore(50 +
		(data.Metadata.Quality-0.5)*20 +
		(avgSig-0.5)*30)

	return models.AnalysisMetrics{
		OverallScore:        overallScore,
		DimensionScores:     dimensionScores(data.Structured),
		BenchmarkComparison: benchmarkComparison(data.Structured.Metrics, benchmarks),
		TrendDirection:      trendDirection(overallScore, historicalScores),
	}
}

// dimensionScores averages the metrics whose key contains the dimension
// name, case-insensitively, scaled to [0,100]. Dimensions with no
// matching metric score a neutral 50.
func dimensionScores(structured models.StructuredData) map[string]float64 {
	scores := make(map[string]float64, len(structured.Dimensions))

	for _, dimension := range structured.Dimensions {
		loweredDim := strings.ToLower(dimension)
		total := 0.0
		matched := 0

		for key, value := range structured.Metrics {
			if strings.Contains(strings.ToLower(key), loweredDim) {
				total += value
				matched++
			}
		}

		if matched == 0 {
			scores[dimension] = 50
			continue
		}
		scores[dimension] = models.ClampScore(total / float64(matched) * 100)
	}

	return scores
}

func benchmarkComparison(metrics map[string]float64, benchmarks []models.Benchmark) map[string]string {
	comparison := make(map[string]string)

	for _, benchmark := range benchmarks {
		value, present := metrics[benchmark.Metric]
		if !present {
			continue
		}
		pct := Percentile(value, benchmark)
		switch {
		case pct > 60:
			comparison[benchmark.Metric] = models.BenchmarkAbove
		case pct > 40:
			comparison[benchmark.Metric] = models.BenchmarkAt
		default:
			comparison[benchmark.Metric] = models.BenchmarkBelow
		}
	}

	return comparison
}

// trendDirection compares the current score against the historical
// mean. Fewer than two historical points always reads as stable.
func trendDirection(overallScore float64, historicalScores []float64) string {
	if len(historicalScores) < 2 {
		return models.TrendStable
	}

	total := 0.0
	for _, score := range historicalScores {
		total += score
	}
	diff := overallScore - total/float64(len(historicalScores))

	switch {
	case diff > trendBand:
		return models.TrendImproving
	case diff < -trendBand:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}
