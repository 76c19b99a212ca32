// internal/reasoning/engine_test.go
package reasoning

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/models"
)

func sampleProcessedData() models.ProcessedData {
	return models.ProcessedData{
		Cleaned: map[string]interface{}{
			"tenantId": "tenant-1",
		},
		Structured: models.StructuredData{
			Dimensions: []string{"completeness", "technical"},
			Metrics: map[string]float64{
				"completeness": 0.8,
				"complexity":   0.4,
			},
			Patterns: []models.Pattern{
				{Pattern: "data_completeness", Frequency: 0.8, Significance: 0.5},
			},
		},
		Metadata: models.ProcessingMetadata{
			RecordCount:  12,
			Completeness: 0.8,
			Quality:      0.75,
		},
	}
}

func TestEngine_Analyze_ComposesAllSections(t *testing.T) {
	engine := NewEngine(logger.NewNoOpLogger())
	data := sampleProcessedData()
	ctx := models.DomainContext{
		Domain: "skills",
		BestPractices: []models.BestPractice{
			{Practice: "Continuous learning", Rationale: "keeps skills current", Implementation: "Establish a learning budget per employee", Priority: models.PriorityCritical},
		},
	}

	result := engine.Analyze(data, ctx, Options{})

	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Recommendations)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.Equal(t, models.TrendStable, result.Metrics.TrendDirection)
}

// Scenario: two patterns at significances 0.9 and 0.3, only the first
// clears the 0.4 insight threshold.
func TestGenerateInsights_SignificanceThreshold(t *testing.T) {
	data := models.ProcessedData{
		Structured: models.StructuredData{
			Patterns: []models.Pattern{
				{Pattern: "diverse_skills", Frequency: 1.0, Significance: 0.9},
				{Pattern: "flat_structure", Frequency: 1.0, Significance: 0.3},
			},
		},
		Metadata: models.ProcessingMetadata{Completeness: 0.9, Quality: 0.8},
	}

	insights := GenerateInsights(data, nil)

	require.Len(t, insights, 1)
	assert.Contains(t, insights[0].Description, "diverse_skills")
	assert.Equal(t, models.LevelHigh, insights[0].Impact)
}

func TestGenerateInsights_PatternClassification(t *testing.T) {
	tests := []struct {
		pattern  string
		expected string
	}{
		{"skills_gap", models.InsightGap},
		{"attrition_risk", models.InsightThreat},
		{"core_strength", models.InsightStrength},
		{"data_completeness", models.InsightTrend},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyPattern(tt.pattern))
		})
	}
}

func TestGenerateInsights_BenchmarkClassification(t *testing.T) {
	benchmark := models.Benchmark{
		Metric:       "responseRate",
		Industry:     "technology",
		Percentile25: 0.2,
		Percentile50: 0.4,
		Percentile75: 0.6,
		Percentile90: 0.8,
	}

	tests := []struct {
		name         string
		value        float64
		expectedType string
	}{
		{"bottom quartile is a weakness", 0.1, models.InsightWeakness},
		{"top decile is a strength", 0.9, models.InsightStrength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := models.ProcessedData{
				Structured: models.StructuredData{
					Metrics: map[string]float64{"responseRate": tt.value},
				},
				Metadata: models.ProcessingMetadata{Completeness: 0.9, Quality: 0.8},
			}

			insights := GenerateInsights(data, []models.Benchmark{benchmark})

			require.Len(t, insights, 1)
			assert.Equal(t, tt.expectedType, insights[0].Type)
			assert.Equal(t, []string{"responseRate"}, insights[0].RelatedMetrics)
		})
	}
}

func TestGenerateInsights_MidRangeBenchmarkProducesNoInsight(t *testing.T) {
	benchmark := models.Benchmark{
		Metric:       "responseRate",
		Percentile25: 0.2,
		Percentile50: 0.4,
		Percentile75: 0.6,
		Percentile90: 0.8,
	}
	data := models.ProcessedData{
		Structured: models.StructuredData{
			Metrics: map[string]float64{"responseRate": 0.5},
		},
		Metadata: models.ProcessingMetadata{Completeness: 0.9, Quality: 0.8},
	}

	assert.Empty(t, GenerateInsights(data, []models.Benchmark{benchmark}))
}

func TestGenerateInsights_LowCompletenessEmitsGap(t *testing.T) {
	data := models.ProcessedData{
		Metadata: models.ProcessingMetadata{Completeness: 0.5, Quality: 0.6},
	}

	insights := GenerateInsights(data, nil)

	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightGap, insights[0].Type)
	assert.Equal(t, "data-quality", insights[0].Category)
}

func TestGenerateRecommendations_NoDuplicateActions(t *testing.T) {
	insights := []models.Insight{
		{Type: models.InsightGap, Category: "pattern", Description: "coverage gap", Impact: models.LevelHigh},
		{Type: models.InsightGap, Category: "pattern", Description: "coverage gap", Impact: models.LevelMedium},
	}

	recommendations := GenerateRecommendations(insights, models.DomainContext{}, nil)

	seen := make(map[string]bool)
	for _, rec := range recommendations {
		assert.False(t, seen[rec.Action], "duplicate action: %s", rec.Action)
		seen[rec.Action] = true
	}
	// Dedupe keeps the critical entry produced by the high-impact gap.
	require.Len(t, recommendations, 1)
	assert.Equal(t, models.PriorityCritical, recommendations[0].Priority)
	assert.Equal(t, models.TimeframeImmediate, recommendations[0].Timeframe)
}

func TestDedupeByAction_DoesNotAliasInput(t *testing.T) {
	input := []models.Recommendation{
		{Priority: models.PriorityCritical, Action: "Address: missing skills data"},
		{Priority: models.PriorityHigh, Action: "Address: missing skills data"},
		{Priority: models.PriorityHigh, Action: "Run quarterly engagement surveys"},
	}
	original := make([]models.Recommendation, len(input))
	copy(original, input)

	deduped := dedupeByAction(input)

	require.Len(t, deduped, 2)
	assert.Equal(t, models.PriorityCritical, deduped[0].Priority)
	// The input slice must survive untouched for callers that retain it.
	assert.Equal(t, original, input)
	deduped[0].Action = "mutated"
	assert.Equal(t, original, input)
}

func TestGenerateRecommendations_PrioritySorted(t *testing.T) {
	insights := []models.Insight{
		{Type: models.InsightWeakness, Description: "low response rate", Impact: models.LevelLow},
		{Type: models.InsightGap, Description: "missing skills data", Impact: models.LevelHigh},
	}
	ctx := models.DomainContext{
		BestPractices: []models.BestPractice{
			{Practice: "Survey cadence", Implementation: "Run quarterly engagement surveys", Priority: models.PriorityHigh},
		},
	}

	recommendations := GenerateRecommendations(insights, ctx, []string{"People Analytics"})

	require.NotEmpty(t, recommendations)
	for i := 1; i < len(recommendations); i++ {
		assert.LessOrEqual(t,
			priorityRank[recommendations[i-1].Priority],
			priorityRank[recommendations[i].Priority],
			"recommendations out of priority order at %d", i)
	}
}

func TestGenerateRecommendations_BestPracticeGating(t *testing.T) {
	ctx := models.DomainContext{
		BestPractices: []models.BestPractice{
			{Practice: "Mentoring programs", Implementation: "Pair juniors with senior mentors", Priority: models.PriorityHigh},
			{Practice: "Succession planning", Implementation: "Maintain a succession plan for key roles", Priority: models.PriorityCritical},
			{Practice: "Open feedback", Implementation: "Hold monthly feedback sessions", Priority: models.PriorityLow},
		},
	}
	insights := []models.Insight{
		{Type: models.InsightGap, Description: "mentoring coverage is thin", Impact: models.LevelMedium},
	}

	recommendations := GenerateRecommendations(insights, ctx, nil)

	actions := make([]string, 0, len(recommendations))
	for _, rec := range recommendations {
		actions = append(actions, rec.Action)
	}
	// Critical practice always included; high practice included because a
	// gap insight mentions its first word; low practice excluded.
	assert.Contains(t, actions, "Maintain a succession plan for key roles")
	assert.Contains(t, actions, "Pair juniors with senior mentors")
	assert.NotContains(t, actions, "Hold monthly feedback sessions")
}

func TestCalculateConfidence_DefaultsAndBounds(t *testing.T) {
	data := sampleProcessedData()

	confidence := CalculateConfidence(data, nil, nil)

	// 0.30*0.8 + 0.20*0.75 + 0.20*0.5 + 0.15*0.5 + 0.15*0.5
	assert.InDelta(t, 0.64, confidence, 1e-9)
	assert.GreaterOrEqual(t, confidence, 0.0)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestCalculateConfidence_AlwaysInUnitRange(t *testing.T) {
	tests := []struct {
		name string
		data models.ProcessedData
	}{
		{"empty data", models.ProcessedData{}},
		{"perfect data", models.ProcessedData{
			Structured: models.StructuredData{
				Patterns: []models.Pattern{{Pattern: "p", Significance: 1.0}},
			},
			Metadata: models.ProcessingMetadata{Completeness: 1.0, Quality: 1.0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence := CalculateConfidence(tt.data, nil, nil)
			assert.GreaterOrEqual(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}
}

func TestCalculateConfidence_HistoricalConsistency(t *testing.T) {
	data := sampleProcessedData()
	identical := sampleProcessedData()
	disjoint := sampleProcessedData()
	disjoint.Structured.Patterns = []models.Pattern{
		{Pattern: "deep_hierarchy", Significance: 0.8},
	}

	withIdentical := CalculateConfidence(data, nil, []models.ProcessedData{identical})
	withDisjoint := CalculateConfidence(data, nil, []models.ProcessedData{disjoint})

	assert.Greater(t, withIdentical, withDisjoint)
}

// Scenario: quality 0.5 produces the fixed data-quality risk at medium
// likelihood.
func TestIdentifyRisks_DataQualityRisk(t *testing.T) {
	data := models.ProcessedData{
		Metadata: models.ProcessingMetadata{Completeness: 0.8, Quality: 0.5},
	}

	risks := IdentifyRisks(nil, data, nil)

	require.Len(t, risks, 1)
	assert.Equal(t, "Data quality issues may undermine analysis reliability", risks[0].Risk)
	assert.Equal(t, models.LevelMedium, risks[0].Likelihood)
}

// Scenario: a strategic requirement with no corroborating strength
// insight surfaces as exactly one risk.
func TestIdentifyRisks_UnmetStrategicRequirement(t *testing.T) {
	data := models.ProcessedData{
		Metadata: models.ProcessingMetadata{Quality: 0.8},
	}
	insights := []models.Insight{
		{Type: models.InsightTrend, Description: "steady survey participation"},
	}

	risks := IdentifyRisks(insights, data, []string{"Data Analytics"})

	require.Len(t, risks, 1)
	assert.Equal(t, "Strategic requirement not met: Data Analytics", risks[0].Risk)
}

func TestIdentifyRisks_MetStrategicRequirement(t *testing.T) {
	data := models.ProcessedData{
		Metadata: models.ProcessingMetadata{Quality: 0.8},
	}
	insights := []models.Insight{
		{Type: models.InsightStrength, Description: "strong data analytics capability"},
	}

	risks := IdentifyRisks(insights, data, []string{"Data Analytics"})

	assert.Empty(t, risks)
}

func TestIdentifyRisks_AnomalyCount(t *testing.T) {
	data := models.ProcessedData{
		Metadata: models.ProcessingMetadata{
			Quality:   0.8,
			Anomalies: []string{"a", "b", "c", "d"},
		},
	}

	risks := IdentifyRisks(nil, data, nil)

	require.Len(t, risks, 1)
	assert.Equal(t, models.LevelHigh, risks[0].Likelihood)
	assert.Contains(t, risks[0].Risk, "anomaly count (4)")
}

func TestIdentifyOpportunities_FromInsights(t *testing.T) {
	insights := []models.Insight{
		{Type: models.InsightStrength, Description: "strong technical bench", Confidence: 0.9},
		{Type: models.InsightTrend, Description: "rising engagement", Confidence: 0.6},
		{Type: models.InsightGap, Description: "sparse survey data", Impact: models.LevelMedium},
	}
	ctx := models.DomainContext{
		IndustryContext: models.IndustryContext{
			Opportunities: []string{"AI-assisted workflows"},
		},
	}

	opportunities := IdentifyOpportunities(insights, ctx)

	require.Len(t, opportunities, 4)
	assert.Equal(t, models.LevelLow, opportunities[0].Effort)
	assert.Equal(t, "1-3 months", opportunities[0].TimeToValue)
	assert.Equal(t, "3-6 months", opportunities[1].TimeToValue)
	assert.Equal(t, "AI-assisted workflows", opportunities[2].Opportunity)
	assert.Contains(t, opportunities[3].Opportunity, "Quick win")
}

func TestIdentifyOpportunities_IndustryGatedOnStrength(t *testing.T) {
	ctx := models.DomainContext{
		IndustryContext: models.IndustryContext{
			Opportunities: []string{"AI-assisted workflows"},
		},
	}
	insights := []models.Insight{
		{Type: models.InsightTrend, Description: "flat participation", Confidence: 0.9},
	}

	opportunities := IdentifyOpportunities(insights, ctx)

	for _, opp := range opportunities {
		assert.NotEqual(t, "AI-assisted workflows", opp.Opportunity)
	}
}

// Scenario: value 85 against {60,70,80,90} classifies at percentile 90,
// which reads as above the benchmark.
func TestCalculateMetrics_BenchmarkComparison(t *testing.T) {
	benchmark := models.Benchmark{
		Metric:       "skillsCoverage",
		Percentile25: 60,
		Percentile50: 70,
		Percentile75: 80,
		Percentile90: 90,
	}
	data := models.ProcessedData{
		Structured: models.StructuredData{
			Metrics: map[string]float64{"skillsCoverage": 85},
		},
		Metadata: models.ProcessingMetadata{Quality: 0.7},
	}

	metrics := CalculateMetrics(data, []models.Benchmark{benchmark}, nil)

	assert.Equal(t, models.BenchmarkAbove, metrics.BenchmarkComparison["skillsCoverage"])
}

func TestCalculateMetrics_OverallScore(t *testing.T) {
	data := models.ProcessedData{
		Structured: models.StructuredData{
			Patterns: []models.Pattern{{Pattern: "p", Significance: 0.5}},
		},
		Metadata: models.ProcessingMetadata{Quality: 0.5},
	}

	metrics := CalculateMetrics(data, nil, nil)

	// Neutral quality and significance land exactly on the midpoint.
	assert.InDelta(t, 50.0, metrics.OverallScore, 1e-9)
}

func TestCalculateMetrics_DimensionScoreDefaults(t *testing.T) {
	data := models.ProcessedData{
		Structured: models.StructuredData{
			Dimensions: []string{"leadership"},
			Metrics:    map[string]float64{"completeness": 0.8},
		},
	}

	metrics := CalculateMetrics(data, nil, nil)

	assert.Equal(t, 50.0, metrics.DimensionScores["leadership"])
}

func TestCalculateMetrics_TrendDirection(t *testing.T) {
	data := models.ProcessedData{
		Structured: models.StructuredData{
			Patterns: []models.Pattern{{Pattern: "p", Significance: 0.5}},
		},
		Metadata: models.ProcessingMetadata{Quality: 0.5},
	}

	tests := []struct {
		name     string
		history  []float64
		expected string
	}{
		{"single point is stable", []float64{30}, models.TrendStable},
		{"improving past the band", []float64{40, 44}, models.TrendImproving},
		{"declining past the band", []float64{60, 62}, models.TrendDeclining},
		{"inside the band", []float64{48, 52}, models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := CalculateMetrics(data, nil, tt.history)
			assert.Equal(t, tt.expected, metrics.TrendDirection)
		})
	}
}

func TestPercentile_StepBoundaries(t *testing.T) {
	benchmark := models.Benchmark{
		Percentile25: 60,
		Percentile50: 70,
		Percentile75: 80,
		Percentile90: 90,
	}

	tests := []struct {
		value    float64
		expected int
	}{
		{50, 25},
		{60, 25},
		{65, 50},
		{70, 50},
		{75, 75},
		{85, 90},
		{90, 90},
		{95, 95},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("value_%v", tt.value), func(t *testing.T) {
			assert.Equal(t, tt.expected, Percentile(tt.value, benchmark))
		})
	}
}

func TestPercentile_Monotonic(t *testing.T) {
	benchmark := models.Benchmark{
		Percentile25: 10,
		Percentile50: 20,
		Percentile75: 30,
		Percentile90: 40,
	}

	previous := 0
	for value := 0.0; value <= 50.0; value += 0.5 {
		pct := Percentile(value, benchmark)
		assert.GreaterOrEqual(t, pct, previous, "percentile decreased at value %v", value)
		previous = pct
	}
}
