// internal/reasoning/confidence.go
package reasoning

import (
	"analysis-workers/internal/models"
)

// Confidence factor weights. Heuristic constants preserved verbatim;
// do not rebalance without revisiting the downstream score contracts.
const (
	weightCompleteness = 0.30
	weightQuality      = 0.20
	weightPatternSig   = 0.20
	weightBenchmark    = 0.15
	weightHistory      = 0.15

	// Neutral contribution when a factor has no data to judge.
	neutralFactor = 0.5
)

// CalculateConfidence scores how much the analysis output can be
// trusted, as a weighted sum of five factors. Benchmark alignment and
// historical consistency fall back to a neutral 0.5 when their inputs
// are absent.
func CalculateConfidence(data models.ProcessedData, benchmarks []models.Benchmark, history []models.ProcessedData) float64 {
	confidence := weightCompleteness*data.Metadata.Completeness +
		weightQuality*data.Metadata.Quality +
		weightPatternSig*averageSignificance(data.Structured.Patterns) +
		weightBenchmark*benchmarkAlignment(data, benchmarks) +
		weightHistory*historicalConsistency(data, history)

	return models.Clamp01(confidence)
}

func averageSignificance(patterns []models.Pattern) float64 {
	if len(patterns) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range patterns {
		total += p.Significance
	}
	return total / float64(len(patterns))
}

// benchmarkAlignment is the mean percentile (as a fraction) of the
// structured metrics covered by the supplied benchmarks. Neutral when
// no benchmark matches a present metric.
func benchmarkAlignment(data models.ProcessedData, benchmarks []models.Benchmark) float64 {
	if len(benchmarks) == 0 {
		return neutralFactor
	}

	total := 0.0
	matched := 0
	for _, benchmark := range benchmarks {
		value, present := data.Structured.Metrics[benchmark.Metric]
		if !present {
			continue
		}
		total += float64(Percentile(value, benchmark)) / 100
		matched++
	}

	if matched == 0 {
		return neutralFactor
	}
	return total / float64(matched)
}

// historicalConsistency is the mean Jaccard similarity of the current
// pattern-name set against each historical snapshot's set. Neutral with
// no history.
func historicalConsistency(data models.ProcessedData, history []models.ProcessedData) float64 {
	if len(history) == 0 {
		return neutralFactor
	}

	current := patternSet(data.Structured.Patterns)
	total := 0.0
	for _, snapshot := range history {
		total += jaccard(current, patternSet(snapshot.Structured.Patterns))
	}
	return total / float64(len(history))
}

func patternSet(patterns []models.Pattern) map[string]bool {
	set := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		set[p.Pattern] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	intersection := 0
	for name := range a {
		if b[name] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
