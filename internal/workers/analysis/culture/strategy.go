// internal/workers/analysis/culture/strategy.go
package culture

import (
	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/pipeline"
)

// Strategy tailors the pipeline prompts to organizational culture:
// values alignment, collaboration signals, and survey sentiment.
type Strategy struct {
	*pipeline.DefaultStrategy
}

func NewStrategy() *Strategy {
	return &Strategy{
		DefaultStrategy: pipeline.NewDefaultStrategy(knowledge.DomainCulture),
	}
}

func (s *Strategy) SystemPrompt(stage string) string {
	switch stage {
	case pipeline.StageKnowledge:
		return "You are an organizational culture expert. Summarize the culture frameworks, values models, and survey benchmarks relevant to this organization."
	case pipeline.StageData:
		return "You are a culture analyst. Interpret the survey responses and collaboration data against the culture frameworks, highlighting alignment and friction signals."
	default:
		return "You are a culture transformation consultant. Recommend interventions that strengthen the observed cultural strengths and address the friction points."
	}
}
