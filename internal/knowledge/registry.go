// internal/knowledge/registry.go
package knowledge

import "analysis-workers/internal/models"

// Registered analysis domains.
const (
	DomainSkills       = "skills"
	DomainPerformance  = "performance"
	DomainBenchmarking = "benchmarking"
	DomainCulture      = "culture"
	DomainEngagement   = "engagement"
)

// DefaultStore builds the store with the built-in domain knowledge.
// Called once from the manager at startup.
func DefaultStore() *Store {
	return NewStore(defaultContexts(), defaultIndustries(), genericIndustry())
}

func defaultContexts() []models.DomainContext {
	return []models.DomainContext{
		{
			Domain: DomainSkills,
			Frameworks: []models.Framework{
				{
					Name:          "Competency Model",
					Description:   "Role-based competency mapping across technical and behavioral skills",
					Applicability: 0.9,
					Components:    []string{"technical", "leadership", "communication", "problem-solving"},
				},
				{
					Name:          "Skills Taxonomy",
					Description:   "Hierarchical classification of organizational skills by family and proficiency",
					Applicability: 0.85,
					Components:    []string{"coverage", "depth", "adjacency", "criticality"},
				},
			},
			BestPractices: []models.BestPractice{
				{
					Practice:       "Skills inventory refresh",
					Rationale:      "Stale inventories misstate capability gaps",
					Implementation: "Re-survey skill self-assessments quarterly",
					Priority:       models.PriorityHigh,
				},
				{
					Practice:       "Critical-role succession mapping",
					Rationale:      "Single points of failure in scarce skills carry delivery risk",
					Implementation: "Maintain at least two qualified successors per critical skill cluster",
					Priority:       models.PriorityCritical,
				},
				{
					Practice:       "Learning path alignment",
					Rationale:      "Training spend should target measured gaps",
					Implementation: "Map development budgets to the lowest-scoring skill dimensions",
					Priority:       models.PriorityMedium,
				},
			},
			Benchmarks: []models.Benchmark{
				{Metric: "skillsCoverage", Industry: "technology", Percentile25: 0.35, Percentile50: 0.5, Percentile75: 0.68, Percentile90: 0.82},
				{Metric: "completeness", Industry: "technology", Percentile25: 0.5, Percentile50: 0.65, Percentile75: 0.8, Percentile90: 0.92},
			},
			IndustryContext: models.IndustryContext{
				Trends:        []string{"AI-assisted upskilling", "Skills-based hiring over credentials"},
				Challenges:    []string{"Rapid skill obsolescence", "Inconsistent self-assessment quality"},
				Opportunities: []string{"Internal mobility marketplaces", "Targeted micro-learning"},
				Regulations:   []string{"EEO reporting requirements"},
			},
		},
		{
			Domain: DomainPerformance,
			Frameworks: []models.Framework{
				{
					Name:          "OKR Alignment",
					Description:   "Objectives and key results cascading from organizational goals",
					Applicability: 0.9,
					Components:    []string{"goal-alignment", "outcome-tracking", "feedback-cadence"},
				},
				{
					Name:          "Nine-Box Grid",
					Description:   "Performance versus potential placement for talent decisions",
					Applicability: 0.75,
					Components:    []string{"performance", "potential", "readiness"},
				},
			},
			BestPractices: []models.BestPractice{
				{
					Practice:       "Continuous feedback loops",
					Rationale:      "Annual-only reviews lag actual performance shifts",
					Implementation: "Monthly structured check-ins with recorded outcomes",
					Priority:       models.PriorityCritical,
				},
				{
					Practice:       "Calibration sessions",
					Rationale:      "Uncalibrated ratings drift by manager leniency",
					Implementation: "Cross-team rating calibration each review cycle",
					Priority:       models.PriorityHigh,
				},
			},
			Benchmarks: []models.Benchmark{
				{Metric: "responseRate", Industry: "technology", Percentile25: 0.4, Percentile50: 0.6, Percentile75: 0.75, Percentile90: 0.88},
				{Metric: "completeness", Industry: "technology", Percentile25: 0.45, Percentile50: 0.6, Percentile75: 0.78, Percentile90: 0.9},
			},
			IndustryContext: models.IndustryContext{
				Trends:        []string{"Continuous performance management", "Outcome-weighted ratings"},
				Challenges:    []string{"Rating inflation", "Proxy metrics diverging from impact"},
				Opportunities: []string{"Real-time goal tracking", "Peer feedback signals"},
				Regulations:   []string{"Works council consultation on monitoring"},
			},
		},
		{
			Domain: DomainBenchmarking,
			Frameworks: []models.Framework{
				{
					Name:          "Industry Percentile Model",
					Description:   "Positioning organizational metrics against industry reference percentiles",
					Applicability: 0.95,
					Components:    []string{"compensation", "headcount-efficiency", "turnover", "productivity"},
				},
			},
			BestPractices: []models.BestPractice{
				{
					Practice:       "Peer-set selection discipline",
					Rationale:      "Benchmarks against the wrong peer set mislead targets",
					Implementation: "Re-validate the comparison peer set annually by size and sector",
					Priority:       models.PriorityHigh,
				},
				{
					Practice:       "Metric definition parity",
					Rationale:      "Percentiles are meaningless when metric definitions differ",
					Implementation: "Normalize metric definitions before any external comparison",
					Priority:       models.PriorityCritical,
				},
			},
			Benchmarks: []models.Benchmark{
				{Metric: "organizationSize", Industry: "technology", Percentile25: 50, Percentile50: 200, Percentile75: 1000, Percentile90: 5000},
				{Metric: "totalRecords", Industry: "technology", Percentile25: 100, Percentile50: 500, Percentile75: 2000, Percentile90: 10000},
			},
			IndustryContext: models.IndustryContext{
				Trends:        []string{"Real-time benchmark feeds", "Cohort-of-one benchmarking"},
				Challenges:    []string{"Survey lag", "Definition drift between vendors"},
				Opportunities: []string{"Cross-industry talent comparisons"},
				Regulations:   []string{"Pay transparency directives"},
			},
		},
		{
			Domain: DomainCulture,
			Frameworks: []models.Framework{
				{
					Name:          "Values Alignment Cylinders",
					Description:   "Layered values model from survival through contribution",
					Applicability: 0.85,
					Components:    []string{"safety", "belonging", "growth", "meaning", "contribution"},
				},
				{
					Name:          "Organizational Climate Survey",
					Description:   "Perception measurement across leadership, fairness, and voice",
					Applicability: 0.8,
					Components:    []string{"leadership-trust", "fairness", "voice", "recognition"},
				},
			},
			BestPractices: []models.BestPractice{
				{
					Practice:       "Psychological safety measurement",
					Rationale:      "Teams that cannot surface problems cannot fix them",
					Implementation: "Include safety items in every pulse survey and track trends",
					Priority:       models.PriorityCritical,
				},
				{
					Practice:       "Survey action follow-through",
					Rationale:      "Unactioned surveys depress future participation",
					Implementation: "Publish actions taken within 30 days of survey close",
					Priority:       models.PriorityHigh,
				},
			},
			Benchmarks: []models.Benchmark{
				{Metric: "responseRate", Industry: "technology", Percentile25: 0.45, Percentile50: 0.62, Percentile75: 0.78, Percentile90: 0.9},
			},
			IndustryContext: models.IndustryContext{
				Trends:        []string{"Hybrid-work culture measurement", "Values-based hiring"},
				Challenges:    []string{"Survey fatigue", "Sentiment-behavior gaps"},
				Opportunities: []string{"Passive collaboration analytics", "Manager enablement programs"},
				Regulations:   []string{"Anonymity thresholds for small cohorts"},
			},
		},
		{
			Domain: DomainEngagement,
			Frameworks: []models.Framework{
				{
					Name:          "Engagement Drivers Model",
					Description:   "Decomposition of engagement into autonomy, mastery, and purpose drivers",
					Applicability: 0.85,
					Components:    []string{"autonomy", "mastery", "purpose", "workload"},
				},
			},
			BestPractices: []models.BestPractice{
				{
					Practice:       "Pulse survey cadence",
					Rationale:      "Quarterly pulses catch disengagement before attrition",
					Implementation: "Short monthly pulses with a stable driver item set",
					Priority:       models.PriorityHigh,
				},
			},
			Benchmarks: []models.Benchmark{
				{Metric: "responseRate", Industry: "technology", Percentile25: 0.4, Percentile50: 0.58, Percentile75: 0.72, Percentile90: 0.85},
				{Metric: "completeness", Industry: "technology", Percentile25: 0.5, Percentile50: 0.65, Percentile75: 0.8, Percentile90: 0.9},
			},
			IndustryContext: models.IndustryContext{
				Trends:        []string{"Always-on listening", "Driver-level benchmarking"},
				Challenges:    []string{"Low pulse participation", "Attribution of driver changes"},
				Opportunities: []string{"Attrition early-warning models"},
				Regulations:   []string{"Consent requirements for passive signals"},
			},
		},
	}
}

func defaultIndustries() map[string]models.IndustryContext {
	return map[string]models.IndustryContext{
		"technology": {
			Trends:        []string{"Remote-first operating models", "AI augmentation of knowledge work"},
			Challenges:    []string{"Talent market volatility", "Burnout in high-growth teams"},
			Opportunities: []string{"Global talent pools", "Automation of routine work"},
			Regulations:   []string{"Data protection (GDPR/CCPA)"},
		},
		"healthcare": {
			Trends:        []string{"Clinical workforce shortages", "Telehealth expansion"},
			Challenges:    []string{"Shift-work fatigue", "Credential compliance burden"},
			Opportunities: []string{"Cross-training clinical staff"},
			Regulations:   []string{"HIPAA", "Clinical staffing ratios"},
		},
		"finance": {
			Trends:        []string{"Digital banking talent competition"},
			Challenges:    []string{"Key-person risk in controls functions"},
			Opportunities: []string{"Automation of reconciliation work"},
			Regulations:   []string{"SOX controls", "FINRA licensing"},
		},
		"retail": {
			Trends:        []string{"Frontline scheduling flexibility"},
			Challenges:    []string{"Seasonal turnover spikes"},
			Opportunities: []string{"Store-to-corporate mobility paths"},
			Regulations:   []string{"Predictive scheduling laws"},
		},
	}
}

func genericIndustry() models.IndustryContext {
	return models.IndustryContext{
		Trends:        []string{"Hybrid work normalization", "Skills-based organization design"},
		Challenges:    []string{"Talent retention", "Change fatigue"},
		Opportunities: []string{"Process digitization", "Leadership development"},
		Regulations:   []string{"Local labor law compliance"},
	}
}
