// internal/workers/analysis/performance/strategy.go
package performance

import (
	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/pipeline"
)

// Strategy tailors the pipeline prompts to performance management:
// goal attainment, review signals, and productivity trends.
type Strategy struct {
	*pipeline.DefaultStrategy
}

func NewStrategy() *Strategy {
	return &Strategy{
		DefaultStrategy: pipeline.NewDefaultStrategy(knowledge.DomainPerformance),
	}
}

func (s *Strategy) SystemPrompt(stage string) string {
	switch stage {
	case pipeline.StageKnowledge:
		return "You are a performance management expert. Summarize the goal-setting frameworks, review practices, and attainment benchmarks relevant to this organization."
	case pipeline.StageData:
		return "You are a performance analyst. Interpret the review and goal data against the performance frameworks, highlighting attainment distribution and review coverage."
	default:
		return "You are an organizational performance consultant. Recommend concrete changes to the goal and review process backed by the observed data."
	}
}
