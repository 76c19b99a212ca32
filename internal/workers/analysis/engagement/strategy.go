// internal/workers/analysis/engagement/strategy.go
package engagement

import (
	"fmt"

	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/pipeline"
)

// Strategy tailors the pipeline prompts to employee engagement:
// participation, sentiment, and retention signals.
type Strategy struct {
	*pipeline.DefaultStrategy
}

func NewStrategy() *Strategy {
	return &Strategy{
		DefaultStrategy: pipeline.NewDefaultStrategy(knowledge.DomainEngagement),
	}
}

func (s *Strategy) SystemPrompt(stage string) string {
	switch stage {
	case pipeline.StageKnowledge:
		return "You are an employee engagement expert. Summarize the engagement models, pulse-survey practices, and response-rate benchmarks relevant to this organization."
	case pipeline.StageData:
		return "You are an engagement analyst. Interpret the survey participation and sentiment data against the engagement models, highlighting response coverage and outlier teams."
	default:
		return "You are an employee experience consultant. Recommend actions that raise participation and address the disengagement signals in the data."
	}
}

func (s *Strategy) BuildPrompt(stage string, in pipeline.PromptInput) string {
	prompt := s.DefaultStrategy.BuildPrompt(stage, in)
	if stage == pipeline.StageData {
		if rate, ok := in.Processed.Structured.Metrics["responseRate"]; ok {
			prompt += fmt.Sprintf("\nObserved survey response rate signal: %.2f.", rate)
		}
	}
	return prompt
}
