// Package reasoning implements the insight-synthesis engine of the
// analysis pipeline. Analyze and every helper below it are pure
// mappings from processed data plus domain context to a new
// AnalysisResult; the engine holds no shared mutable state and may be
// called from any number of concurrent analyses.
package reasoning

import (
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/models"
)

// Options carries the optional inputs of an analysis: prior processed
// snapshots, prior overall scores, benchmark overrides, and strategic
// requirements supplied by the caller.
type Options struct {
	// History holds prior ProcessedData snapshots for the same
	// tenant+domain, newest first. Feeds historical consistency.
	History []models.ProcessedData

	// HistoricalScores holds prior overall scores; trend direction
	// needs at least two points.
	HistoricalScores []float64

	// Benchmarks overrides the context benchmarks when non-nil.
	Benchmarks []models.Benchmark

	// StrategicRequirements are capability statements the organization
	// has committed to; unmet ones surface as risks.
	StrategicRequirements []string
}

type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		logger: log.With(map[string]interface{}{
			"component": "reasoning-engine",
		}),
	}
}

// Analyze composes the five synthesis steps into one AnalysisResult.
func (e *Engine) Analyze(data models.ProcessedData, ctx models.DomainContext, opts Options) models.AnalysisResult {
	benchmarks := opts.Benchmarks
	if benchmarks == nil {
		benchmarks = ctx.Benchmarks
	}

	insights := GenerateInsights(data, benchmarks)
	recommendations := GenerateRecommendations(insights, ctx, opts.StrategicRequirements)
	confidence := CalculateConfidence(data, benchmarks, opts.History)
	risks := IdentifyRisks(insights, data, opts.StrategicRequirements)
	opportunities := IdentifyOpportunities(insights, ctx)
	metrics := CalculateMetrics(data, benchmarks, opts.HistoricalScores)

	e.logger.Debug("analysis synthesized", map[string]interface{}{
		"domain":          ctx.Domain,
		"insights":        len(insights),
		"recommendations": len(recommendations),
		"risks":           len(risks),
		"opportunities":   len(opportunities),
		"confidence":      confidence,
		"overallScore":    metrics.OverallScore,
	})

	return models.AnalysisResult{
		Insights:        insights,
		Recommendations: recommendations,
		Confidence:      confidence,
		Risks:           risks,
		Opportunities:   opportunities,
		Metrics:         metrics,
	}
}
