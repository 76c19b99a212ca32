// internal/workers/analysis/benchmarking/strategy.go
package benchmarking

import (
	"fmt"

	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/pipeline"
)

// Strategy tailors the pipeline prompts to industry benchmarking:
// positioning the organization's metrics against industry percentiles.
type Strategy struct {
	*pipeline.DefaultStrategy
}

func NewStrategy() *Strategy {
	return &Strategy{
		DefaultStrategy: pipeline.NewDefaultStrategy(knowledge.DomainBenchmarking),
	}
}

func (s *Strategy) SystemPrompt(stage string) string {
	switch stage {
	case pipeline.StageKnowledge:
		return "You are an industry benchmarking expert. Summarize the reference percentiles, peer-group definitions, and comparison methodologies applicable to this organization."
	case pipeline.StageData:
		return "You are a benchmarking analyst. Position each observed metric against its industry reference points and flag outliers in either direction."
	default:
		return "You are a competitive strategy consultant. Recommend where this organization should invest to move its below-benchmark metrics and how to defend its above-benchmark ones."
	}
}

func (s *Strategy) BuildPrompt(stage string, in pipeline.PromptInput) string {
	prompt := s.DefaultStrategy.BuildPrompt(stage, in)
	if stage == pipeline.StageKnowledge {
		if industry, ok := in.Request["industry"].(string); ok && industry != "" {
			prompt += fmt.Sprintf("\nBenchmark against the %s industry specifically.", industry)
		}
	}
	return prompt
}
