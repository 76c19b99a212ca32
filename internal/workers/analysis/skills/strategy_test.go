// internal/workers/analysis/skills/strategy_test.go
package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/models"
	"analysis-workers/internal/pipeline"
)

func TestStrategy_Domain(t *testing.T) {
	assert.Equal(t, knowledge.DomainSkills, NewStrategy().Domain())
}

func TestStrategy_SystemPrompt_PerStage(t *testing.T) {
	strategy := NewStrategy()

	prompts := map[string]string{
		pipeline.StageKnowledge: strategy.SystemPrompt(pipeline.StageKnowledge),
		pipeline.StageData:      strategy.SystemPrompt(pipeline.StageData),
		pipeline.StageReasoning: strategy.SystemPrompt(pipeline.StageReasoning),
	}

	assert.Contains(t, prompts[pipeline.StageKnowledge], "competency frameworks")
	assert.Contains(t, prompts[pipeline.StageData], "skill inventory")
	assert.Contains(t, prompts[pipeline.StageReasoning], "skill gaps")
	// Three distinct prompts, one per stage.
	assert.NotEqual(t, prompts[pipeline.StageKnowledge], prompts[pipeline.StageData])
	assert.NotEqual(t, prompts[pipeline.StageData], prompts[pipeline.StageReasoning])
}

func TestStrategy_BuildPrompt_EmbedsCoverage(t *testing.T) {
	strategy := NewStrategy()
	in := pipeline.PromptInput{
		Processed: models.ProcessedData{
			Structured: models.StructuredData{
				Metrics: map[string]float64{"skillsCoverage": 0.44},
			},
		},
		Knowledge: models.StageOutput{Raw: "knowledge summary"},
		Data:      models.StageOutput{Raw: "data summary"},
	}

	prompt := strategy.BuildPrompt(pipeline.StageReasoning, in)

	assert.Contains(t, prompt, "0.44")
	assert.Contains(t, prompt, "knowledge summary")
	assert.Contains(t, prompt, "data summary")
}

func TestStrategy_ComposedPromptSpeaksInDomainVoice(t *testing.T) {
	strategy := NewStrategy()
	in := pipeline.PromptInput{
		Request: map[string]interface{}{"tenantId": "tenant-1"},
	}

	tests := []struct {
		stage  string
		phrase string
	}{
		{pipeline.StageKnowledge, "workforce capability expert"},
		{pipeline.StageData, "skills analyst"},
		{pipeline.StageReasoning, "talent strategy consultant"},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			prompt := pipeline.ComposePrompt(strategy, tt.stage, in)

			assert.Contains(t, prompt, tt.phrase)
			// The generic voice must not leak through the embedding.
			assert.NotContains(t, prompt, "organizational analysis expert")
		})
	}
}

func TestStrategy_ParseOutput_DelegatesToDefault(t *testing.T) {
	strategy := NewStrategy()

	output, err := strategy.ParseOutput(pipeline.StageReasoning, `{"summary": "ok"}`)

	require.NoError(t, err)
	assert.Equal(t, "ok", output.Fields["summary"])
}
