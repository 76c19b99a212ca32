// internal/reasoning/insights.go
package reasoning

import (
	"fmt"
	"strings"

	"analysis-workers/internal/models"
)

// Minimum pattern significance to surface as an insight.
const patternInsightThreshold = 0.4

// GenerateInsights derives insights from four sources: significant
// patterns, benchmark positioning of structured metrics, strong
// relationships, and one overall data-quality insight.
func GenerateInsights(data models.ProcessedData, benchmarks []models.Benchmark) []models.Insight {
	var insights []models.Insight

	for _, pattern := range data.Structured.Patterns {
		if pattern.Significance < patternInsightThreshold {
			continue
		}
		insights = append(insights, models.Insight{
			Type:        classifyPattern(pattern.Pattern),
			Category:    "pattern",
			Description: fmt.Sprintf("Detected pattern %q (frequency %.2f)", pattern.Pattern, pattern.Frequency),
			Impact:      significanceImpact(pattern.Significance),
			Confidence:  pattern.Significance,
			Evidence: []string{
				fmt.Sprintf("pattern significance %.2f", pattern.Significance),
			},
		})
	}

	for _, benchmark := range benchmarks {
		value, present := data.Structured.Metrics[benchmark.Metric]
		if !present {
			continue
		}
		pct := Percentile(value, benchmark)
		switch {
		case pct <= 25:
			insights = append(insights, models.Insight{
				Type:        models.InsightWeakness,
				Category:    "benchmark",
				Description: fmt.Sprintf("%s is in the bottom quartile for %s (value %.2f)", benchmark.Metric, benchmark.Industry, value),
				Impact:      models.LevelHigh,
				Confidence:  0.75,
				Evidence: []string{
					fmt.Sprintf("percentile %d against industry reference", pct),
				},
				RelatedMetrics: []string{benchmark.Metric},
			})
		case pct > 75:
			insights = append(insights, models.Insight{
				Type:        models.InsightStrength,
				Category:    "benchmark",
				Description: fmt.Sprintf("%s outperforms the %s industry reference (value %.2f)", benchmark.Metric, benchmark.Industry, value),
				Impact:      models.LevelMedium,
				Confidence:  0.75,
				Evidence: []string{
					fmt.Sprintf("percentile %d against industry reference", pct),
				},
				RelatedMetrics: []string{benchmark.Metric},
			})
		}
	}

	for _, rel := range data.Structured.Relationships {
		if rel.Strength <= 0.6 {
			continue
		}
		insightType := models.InsightOpportunity
		if rel.Strength > 0.8 {
			insightType = models.InsightStrength
		}
		insights = append(insights, models.Insight{
			Type:        insightType,
			Category:    "relationship",
			Description: fmt.Sprintf("Strong %s relationship between %s and %s", rel.Type, rel.From, rel.To),
			Impact:      models.LevelMedium,
			Confidence:  rel.Strength,
			Evidence: []string{
				fmt.Sprintf("relationship strength %.2f", rel.Strength),
			},
		})
	}

	if qualityInsight, ok := dataQualityInsight(data.Metadata); ok {
		insights = append(insights, qualityInsight)
	}

	return insights
}

// classifyPattern maps a pattern name onto an insight type by substring.
// Kept for behavioral parity with the upstream detectors, which encode
// semantics in the pattern name rather than a tag.
func classifyPattern(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "gap"):
		return models.InsightGap
	case strings.Contains(lower, "risk"):
		return models.InsightThreat
	case strings.Contains(lower, "strength"):
		return models.InsightStrength
	default:
		return models.InsightTrend
	}
}

func significanceImpact(significance float64) string {
	switch {
	case significance > 0.8:
		return models.LevelHigh
	case significance > 0.6:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

// dataQualityInsight emits at most one insight about the data itself:
// a gap when completeness is poor, a strength when quality is excellent.
func dataQualityInsight(meta models.ProcessingMetadata) (models.Insight, bool) {
	if meta.Completeness < 0.7 {
		return models.Insight{
			Type:        models.InsightGap,
			Category:    "data-quality",
			Description: fmt.Sprintf("Data completeness is low (%.0f%% of fields populated)", meta.Completeness*100),
			Impact:      models.LevelMedium,
			Confidence:  0.9,
			Evidence: []string{
				fmt.Sprintf("completeness %.2f below 0.70 threshold", meta.Completeness),
			},
			RelatedMetrics: []string{"completeness"},
		}, true
	}
	if meta.Quality > 0.9 {
		return models.Insight{
			Type:        models.InsightStrength,
			Category:    "data-quality",
			Description: fmt.Sprintf("Data quality is excellent (score %.2f)", meta.Quality),
			Impact:      models.LevelLow,
			Confidence:  0.9,
			Evidence: []string{
				fmt.Sprintf("quality %.2f above 0.90 threshold", meta.Quality),
			},
			RelatedMetrics: []string{"quality"},
		}, true
	}
	return models.Insight{}, false
}
