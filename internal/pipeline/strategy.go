// internal/pipeline/strategy.go

// Package pipeline sequences the three analysis stages (knowledge,
// data, reasoning) for one request and aggregates their confidences
// and timings into a single result.
package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"analysis-workers/internal/consensus"
	"analysis-workers/internal/models"
)

// Pipeline stages, aliased from the consensus engines they target.
const (
	StageKnowledge = consensus.EngineKnowledge
	StageData      = consensus.EngineData
	StageReasoning = consensus.EngineReasoning
)

// PromptInput carries everything a strategy may embed into a stage
// prompt. Knowledge and Data are only populated for the stages that
// run after them.
type PromptInput struct {
	Request   map[string]interface{}
	Context   models.DomainContext
	Processed models.ProcessedData
	Knowledge models.StageOutput
	Data      models.StageOutput
}

// AgentStrategy customizes the orchestrator per analysis domain. The
// orchestrator owns sequencing and error handling; the strategy owns
// prompt construction and output parsing.
type AgentStrategy interface {
	Domain() string
	SystemPrompt(stage string) string
	BuildPrompt(stage string, in PromptInput) string
	ParseOutput(stage string, text string) (models.StageOutput, error)
}

// DefaultStrategy is the generic strategy shared by all domain
// workers. Domain packages embed it and override the methods they
// need.
type DefaultStrategy struct {
	domain string
}

func NewDefaultStrategy(domain string) *DefaultStrategy {
	return &DefaultStrategy{domain: domain}
}

func (s *DefaultStrategy) Domain() string { return s.domain }

func (s *DefaultStrategy) SystemPrompt(stage string) string {
	switch stage {
	case StageKnowledge:
		return fmt.Sprintf("You are an organizational analysis expert for the %s domain. Summarize the applicable frameworks, best practices, and benchmarks.", s.domain)
	case StageData:
		return fmt.Sprintf("You are a data analyst for the %s domain. Interpret the processed organizational data in light of the domain knowledge.", s.domain)
	default:
		return fmt.Sprintf("You are a senior %s consultant. Synthesize actionable insights and recommendations from the prior analysis stages.", s.domain)
	}
}

// ComposePrompt joins a strategy's system prompt and stage prompt.
// Composition happens here, through the interface, so a domain
// strategy that overrides only SystemPrompt still speaks in its own
// voice: a method promoted from an embedded DefaultStrategy would
// never see the override.
func ComposePrompt(strategy AgentStrategy, stage string, in PromptInput) string {
	return strategy.SystemPrompt(stage) + "\n" + strategy.BuildPrompt(stage, in)
}

func (s *DefaultStrategy) BuildPrompt(stage string, in PromptInput) string {
	var parts []string

	switch stage {
	case StageKnowledge:
		parts = append(parts, "\nDomain context:")
		parts = append(parts, marshalSection(in.Context))
		parts = append(parts, "\nAnalysis request:")
		parts = append(parts, marshalSection(in.Request))

	case StageData:
		parts = append(parts, "\nDomain knowledge summary:")
		parts = append(parts, in.Knowledge.Raw)
		parts = append(parts, "\nProcessed data:")
		parts = append(parts, marshalSection(in.Processed.Structured))
		parts = append(parts, "\nData quality:")
		parts = append(parts, marshalSection(in.Processed.Metadata))

	case StageReasoning:
		parts = append(parts, "\nDomain knowledge summary:")
		parts = append(parts, in.Knowledge.Raw)
		parts = append(parts, "\nData analysis summary:")
		parts = append(parts, in.Data.Raw)
		parts = append(parts, "\nProcessed metrics:")
		parts = append(parts, marshalSection(in.Processed.Structured.Metrics))
	}

	parts = append(parts, "\nRespond with a JSON object and include a confidence score between 0.0 and 1.0.")
	return strings.Join(parts, "\n")
}

func (s *DefaultStrategy) ParseOutput(stage string, text string) (models.StageOutput, error) {
	return ParseStageOutput(text)
}

func marshalSection(v interface{}) string {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(payload)
}
