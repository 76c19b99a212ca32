// internal/pipeline/orchestrator_test.go
package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/consensus"
	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/processing"
	"analysis-workers/internal/reasoning"
)

// scriptedCaller returns one queued response per call, in order.
type scriptedCaller struct {
	responses []consensus.ProviderResponse
	errs      []error
	calls     []consensus.ProviderCall
}

func (s *scriptedCaller) Call(ctx context.Context, call consensus.ProviderCall) (consensus.ProviderResponse, error) {
	idx := len(s.calls)
	s.calls = append(s.calls, call)
	if idx < len(s.errs) && s.errs[idx] != nil {
		return consensus.ProviderResponse{}, s.errs[idx]
	}
	if idx >= len(s.responses) {
		panic("scripted caller exhausted")
	}
	return s.responses[idx], nil
}

func newTestOrchestrator(caller ConsensusCaller) *Orchestrator {
	log := logger.NewNoOpLogger()
	return NewOrchestrator(
		knowledge.DefaultStore(),
		processing.NewProcessor(log),
		reasoning.NewEngine(log),
		caller,
		log,
	)
}

func validRequest() Request {
	return Request{
		TenantID: "tenant-1",
		Input: map[string]interface{}{
			"tenantId":      "tenant-1",
			"skills":        []interface{}{"go", "sql", "kubernetes"},
			"employeeCount": float64(40),
		},
	}
}

func jsonResponse(provider string, confidence float64) consensus.ProviderResponse {
	return consensus.ProviderResponse{
		Narrative:  `{"summary": "stage summary", "confidence": 0.8}`,
		Confidence: confidence,
		Provider:   provider,
	}
}

// Scenario: stage confidences 0.9, 0.7, 0.6 average to about 0.733.
func TestOrchestrator_Run_AggregatesStageConfidences(t *testing.T) {
	caller := &scriptedCaller{
		responses: []consensus.ProviderResponse{
			jsonResponse("alpha", 0.9),
			jsonResponse("alpha", 0.7),
			jsonResponse("beta", 0.6),
		},
	}
	orchestrator := newTestOrchestrator(caller)

	result, err := orchestrator.Run(context.Background(), NewDefaultStrategy(knowledge.DomainSkills), validRequest())

	require.NoError(t, err)
	assert.InDelta(t, 0.733, result.OverallConfidence, 0.001)
	assert.Equal(t, knowledge.DomainSkills, result.Domain)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, []string{"beta"}, result.Reasoning.ProvidersUsed)
	assert.Equal(t,
		result.Knowledge.ProcessingTimeMs+result.Data.ProcessingTimeMs+result.Reasoning.ProcessingTimeMs,
		result.TotalProcessingTimeMs)
	assert.NotEmpty(t, result.FinalOutput.Insights)
}

func TestOrchestrator_Run_StagesExecuteInOrder(t *testing.T) {
	caller := &scriptedCaller{
		responses: []consensus.ProviderResponse{
			jsonResponse("alpha", 0.9),
			jsonResponse("alpha", 0.9),
			jsonResponse("alpha", 0.9),
		},
	}
	orchestrator := newTestOrchestrator(caller)

	_, err := orchestrator.Run(context.Background(), NewDefaultStrategy(knowledge.DomainSkills), validRequest())

	require.NoError(t, err)
	require.Len(t, caller.calls, 3)
	assert.Equal(t, StageKnowledge, caller.calls[0].Engine)
	assert.Equal(t, StageData, caller.calls[1].Engine)
	assert.Equal(t, StageReasoning, caller.calls[2].Engine)
	// Each later prompt embeds the earlier stage's narrative.
	assert.Contains(t, caller.calls[1].Prompt, "stage summary")
	assert.Contains(t, caller.calls[2].Prompt, "stage summary")
}

// domainVoiceStrategy overrides only SystemPrompt, like the thin
// domain strategies do.
type domainVoiceStrategy struct {
	*DefaultStrategy
}

func (s *domainVoiceStrategy) SystemPrompt(stage string) string {
	return "You are a workforce capability expert."
}

func TestOrchestrator_Run_StrategySystemPromptReachesProviders(t *testing.T) {
	caller := &scriptedCaller{
		responses: []consensus.ProviderResponse{
			jsonResponse("alpha", 0.9),
			jsonResponse("alpha", 0.9),
			jsonResponse("alpha", 0.9),
		},
	}
	orchestrator := newTestOrchestrator(caller)
	strategy := &domainVoiceStrategy{DefaultStrategy: NewDefaultStrategy(knowledge.DomainSkills)}

	_, err := orchestrator.Run(context.Background(), strategy, validRequest())

	require.NoError(t, err)
	require.Len(t, caller.calls, 3)
	for _, call := range caller.calls {
		assert.Contains(t, call.Prompt, "workforce capability expert")
		assert.NotContains(t, call.Prompt, "organizational analysis expert")
	}
}

func TestComposePrompt_DefaultStrategy(t *testing.T) {
	strategy := NewDefaultStrategy(knowledge.DomainSkills)

	prompt := ComposePrompt(strategy, StageKnowledge, PromptInput{
		Request: map[string]interface{}{"tenantId": "tenant-1"},
	})

	assert.Contains(t, prompt, "organizational analysis expert")
	assert.Contains(t, prompt, "Domain context:")
	assert.Contains(t, prompt, "tenant-1")
}

func TestOrchestrator_Run_UnknownDomainFails(t *testing.T) {
	caller := &scriptedCaller{}
	orchestrator := newTestOrchestrator(caller)

	_, err := orchestrator.Run(context.Background(), NewDefaultStrategy("astrology"), validRequest())

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownDomain))
	assert.Empty(t, caller.calls, "no provider call should be made for an unknown domain")
}

func TestOrchestrator_Run_ValidationFailureAborts(t *testing.T) {
	caller := &scriptedCaller{}
	orchestrator := newTestOrchestrator(caller)
	req := validRequest()
	delete(req.Input, "tenantId")

	_, err := orchestrator.Run(context.Background(), NewDefaultStrategy(knowledge.DomainSkills), req)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAnalysisValidationFailed))
	assert.Empty(t, caller.calls)
}

func TestOrchestrator_Run_ConsensusFailureAbortsWithoutPartialResult(t *testing.T) {
	caller := &scriptedCaller{
		responses: []consensus.ProviderResponse{
			jsonResponse("alpha", 0.9),
		},
		errs: []error{
			nil,
			errors.NewConsensusBelowThresholdError(0.4, 0.6),
		},
	}
	orchestrator := newTestOrchestrator(caller)

	result, err := orchestrator.Run(context.Background(), NewDefaultStrategy(knowledge.DomainSkills), validRequest())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConsensusBelowThreshold))
	assert.Len(t, caller.calls, 2, "pipeline must stop at the failing stage")
}

func TestOrchestrator_Run_UnparseableNarrativeDegrades(t *testing.T) {
	caller := &scriptedCaller{
		responses: []consensus.ProviderResponse{
			jsonResponse("alpha", 0.9),
			{Narrative: "plain prose with no structure", Confidence: 0.8, Provider: "alpha"},
			jsonResponse("alpha", 0.9),
		},
	}
	orchestrator := newTestOrchestrator(caller)

	result, err := orchestrator.Run(context.Background(), NewDefaultStrategy(knowledge.DomainSkills), validRequest())

	require.NoError(t, err)
	assert.True(t, result.Data.Output.Degraded)
	assert.Equal(t, "plain prose with no structure", result.Data.Output.Raw)
	assert.InDelta(t, DegradedConfidence, result.Data.Confidence, 1e-9)
	// The degraded stage still feeds the next stage's prompt.
	assert.Contains(t, caller.calls[2].Prompt, "plain prose with no structure")
}

func TestParseStageOutput_ExtractsEmbeddedJSON(t *testing.T) {
	narrative := "Here is my analysis:\n{\"score\": 0.8, \"summary\": \"good\"}\nLet me know if you need more."

	output, err := ParseStageOutput(narrative)

	require.NoError(t, err)
	assert.Equal(t, narrative, output.Raw)
	assert.Equal(t, 0.8, output.Fields["score"])
	assert.False(t, output.Degraded)
}

func TestParseStageOutput_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no braces", "plain prose"},
		{"malformed object", "prefix {not json} suffix"},
		{"reversed braces", "} {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStageOutput(tt.text)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeStageParseFailed))
		})
	}
}

func TestDefaultStageOutput(t *testing.T) {
	output := DefaultStageOutput("raw text")

	assert.True(t, output.Degraded)
	assert.Equal(t, "raw text", output.Raw)
	assert.Nil(t, output.Fields)
}
