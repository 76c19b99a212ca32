// internal/models/analysis.go
package models

// ==========================
// 1. Domain Knowledge Types
// ==========================

// Framework is a named conceptual model relevant to an analysis domain.
// Its components become analysis dimensions.
type Framework struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Applicability float64  `json:"applicability"` // [0,1]
	Components    []string `json:"components"`
}

// Best-practice and recommendation priorities.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

type BestPractice struct {
	Practice       string `json:"practice"`
	Rationale      string `json:"rationale"`
	Implementation string `json:"implementation"`
	Priority       string `json:"priority"`
}

// Benchmark holds industry reference percentiles for one metric.
type Benchmark struct {
	Metric       string  `json:"metric"`
	Industry     string  `json:"industry"`
	Percentile25 float64 `json:"percentile25"`
	Percentile50 float64 `json:"percentile50"`
	Percentile75 float64 `json:"percentile75"`
	Percentile90 float64 `json:"percentile90"`
}

type IndustryContext struct {
	Trends        []string `json:"trends"`
	Challenges    []string `json:"challenges"`
	Opportunities []string `json:"opportunities"`
	Regulations   []string `json:"regulations"`
}

// DomainContext is the full knowledge bundle for one analysis domain.
// Built once at startup and never mutated afterwards, so it is safe for
// unsynchronized concurrent reads.
type DomainContext struct {
	Domain          string          `json:"domain"`
	Frameworks      []Framework     `json:"frameworks"`
	BestPractices   []BestPractice  `json:"bestPractices"`
	Benchmarks      []Benchmark     `json:"benchmarks"`
	IndustryContext IndustryContext `json:"industryContext"`
}

// ==========================
// 2. Processed Data Types
// ==========================

type Relationship struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Strength float64 `json:"strength"` // [0,1]
	Type     string  `json:"type"`
}

type Pattern struct {
	Pattern      string  `json:"pattern"`
	Frequency    float64 `json:"frequency"`
	Significance float64 `json:"significance"` // [0,1]
}

type StructuredData struct {
	Dimensions    []string            `json:"dimensions"`
	Metrics       map[string]float64  `json:"metrics"`
	Categories    map[string][]string `json:"categories"`
	Relationships []Relationship      `json:"relationships"`
	Patterns      []Pattern           `json:"patterns"`
}

type ProcessingMetadata struct {
	RecordCount      int      `json:"recordCount"`
	Completeness     float64  `json:"completeness"` // [0,1]
	Quality          float64  `json:"quality"`      // [0,1]
	ProcessingTimeMs int64    `json:"processingTimeMs"`
	Anomalies        []string `json:"anomalies"`
}

// ProcessedData is the Data Processor output. Treat as a value: created
// once per analysis call and never mutated after construction.
type ProcessedData struct {
	Cleaned    map[string]interface{} `json:"cleaned"`
	Normalized map[string]float64     `json:"normalized"`
	Structured StructuredData         `json:"structured"`
	Metadata   ProcessingMetadata     `json:"metadata"`
}

// ==========================
// 3. Analysis Result Types
// ==========================

// Insight types.
const (
	InsightStrength    = "strength"
	InsightWeakness    = "weakness"
	InsightOpportunity = "opportunity"
	InsightThreat      = "threat"
	InsightTrend       = "trend"
	InsightGap         = "gap"
)

// Impact / likelihood / potential / effort levels.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// Recommendation timeframes.
const (
	TimeframeImmediate  = "immediate"
	TimeframeShortTerm  = "short-term"
	TimeframeMediumTerm = "medium-term"
	TimeframeLongTerm   = "long-term"
)

// Trend directions.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// Benchmark comparison buckets.
const (
	BenchmarkAbove = "above"
	BenchmarkAt    = "at"
	BenchmarkBelow = "below"
)

type Insight struct {
	Type           string   `json:"type"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Impact         string   `json:"impact"`
	Confidence     float64  `json:"confidence"` // [0,1]
	Evidence       []string `json:"evidence"`
	RelatedMetrics []string `json:"relatedMetrics"`
}

type Recommendation struct {
	Priority       string   `json:"priority"`
	Category       string   `json:"category"`
	Action         string   `json:"action"`
	Rationale      string   `json:"rationale"`
	ExpectedImpact string   `json:"expectedImpact"`
	Timeframe      string   `json:"timeframe"`
	Resources      []string `json:"resources"`
	Dependencies   []string `json:"dependencies"`
	SuccessMetrics []string `json:"successMetrics"`
}

type Risk struct {
	Risk       string `json:"risk"`
	Likelihood string `json:"likelihood"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

type Opportunity struct {
	Opportunity string `json:"opportunity"`
	Potential   string `json:"potential"`
	Effort      string `json:"effort"`
	TimeToValue string `json:"timeToValue"`
}

type AnalysisMetrics struct {
	OverallScore        float64            `json:"overallScore"` // [0,100]
	DimensionScores     map[string]float64 `json:"dimensionScores"`
	BenchmarkComparison map[string]string  `json:"benchmarkComparison"`
	TrendDirection      string             `json:"trendDirection"`
}

type AnalysisResult struct {
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Confidence      float64          `json:"confidence"` // [0,1]
	Risks           []Risk           `json:"risks"`
	Opportunities   []Opportunity    `json:"opportunities"`
	Metrics         AnalysisMetrics  `json:"metrics"`
}

// ==========================
// 4. Pipeline Stage Types
// ==========================

// StageOutput is the parsed payload of one consensus response. Degraded
// is set when the narrative could not be parsed and a default was
// constructed around the raw text instead.
type StageOutput struct {
	Raw      string                 `json:"raw"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
	Degraded bool                   `json:"degraded,omitempty"`
}

// EngineResult captures one pipeline stage: its parsed output, the
// consensus confidence, wall time, and the providers that answered.
type EngineResult struct {
	Output           StageOutput `json:"output"`
	Confidence       float64     `json:"confidence"` // [0,1]
	ProcessingTimeMs int64       `json:"processingTimeMs"`
	ProvidersUsed    []string    `json:"providersUsed"`
}

// Clamp01 clamps v to [0,1]. Every confidence-like value in this
// repository is kept inside that range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampScore clamps v to the [0,100] score range.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
