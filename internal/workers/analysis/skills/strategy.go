// internal/workers/analysis/skills/strategy.go
package skills

import (
	"fmt"

	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/pipeline"
)

// Strategy tailors the pipeline prompts to skills analysis: coverage,
// gaps against role requirements, and competency development.
type Strategy struct {
	*pipeline.DefaultStrategy
}

func NewStrategy() *Strategy {
	return &Strategy{
		DefaultStrategy: pipeline.NewDefaultStrategy(knowledge.DomainSkills),
	}
}

func (s *Strategy) SystemPrompt(stage string) string {
	switch stage {
	case pipeline.StageKnowledge:
		return "You are a workforce capability expert. Summarize the competency frameworks, skill taxonomies, and coverage benchmarks that apply to this organization."
	case pipeline.StageData:
		return "You are a skills analyst. Map the observed skill inventory onto the competency frameworks and identify coverage, concentration, and correlation signals."
	default:
		return "You are a talent strategy consultant. Recommend how this organization should close skill gaps and leverage its strongest capability clusters."
	}
}

func (s *Strategy) BuildPrompt(stage string, in pipeline.PromptInput) string {
	prompt := s.DefaultStrategy.BuildPrompt(stage, in)
	if stage == pipeline.StageReasoning {
		if coverage, ok := in.Processed.Structured.Metrics["skillsCoverage"]; ok {
			prompt += fmt.Sprintf("\nObserved skills coverage ratio: %.2f (1.0 means 50 distinct skills).", coverage)
		}
	}
	return prompt
}
