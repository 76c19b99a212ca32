// internal/pipeline/orchestrator.go
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/common/metrics"
	"analysis-workers/internal/consensus"
	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/models"
	"analysis-workers/internal/processing"
	"analysis-workers/internal/reasoning"
)

// Run states. A run only moves forward; any fatal stage error parks it
// in StateFailed.
const (
	StateIdle             = "Idle"
	StateRunningKnowledge = "RunningKnowledge"
	StateRunningData      = "RunningData"
	StateRunningReasoning = "RunningReasoning"
	StateCompleted        = "Completed"
	StateFailed           = "Failed"
)

// ConsensusCaller is the boundary to the provider ensemble.
type ConsensusCaller interface {
	Call(ctx context.Context, call consensus.ProviderCall) (consensus.ProviderResponse, error)
}

// Request is one analysis request for a tenant.
type Request struct {
	TenantID              string                 `json:"tenantId"`
	Input                 map[string]interface{} `json:"input"`
	Industry              string                 `json:"industry,omitempty"`
	StrategicRequirements []string               `json:"strategicRequirements,omitempty"`

	// Optional historical context, supplied by the calling worker.
	History          []models.ProcessedData `json:"-"`
	HistoricalScores []float64              `json:"-"`
}

// Result is the three-stage wrapper returned to the calling worker.
type Result struct {
	RunID                 string                `json:"runId"`
	TenantID              string                `json:"tenantId"`
	Domain                string                `json:"domain"`
	Knowledge             models.EngineResult   `json:"knowledge"`
	Data                  models.EngineResult   `json:"data"`
	Reasoning             models.EngineResult   `json:"reasoning"`
	FinalOutput           models.AnalysisResult `json:"finalOutput"`
	ProcessedData         models.ProcessedData  `json:"-"`
	OverallConfidence     float64               `json:"overallConfidence"` // [0,1]
	TotalProcessingTimeMs int64                 `json:"totalProcessingTimeMs"`
}

// Orchestrator runs the fixed three-stage pipeline. Stages execute
// strictly sequentially because each stage's prompt embeds the
// previous stage's parsed output; the only parallelism lives inside
// the consensus caller. Safe for concurrent Run calls.
type Orchestrator struct {
	store     *knowledge.Store
	processor *processing.Processor
	engine    *reasoning.Engine
	caller    ConsensusCaller
	logger    logger.Logger

	temperature float64
	maxTokens   int
}

func NewOrchestrator(store *knowledge.Store, processor *processing.Processor, engine *reasoning.Engine, caller ConsensusCaller, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		store:       store,
		processor:   processor,
		engine:      engine,
		caller:      caller,
		logger:      log.With(map[string]interface{}{"component": "orchestrator"}),
		temperature: 0.3,
		maxTokens:   2048,
	}
}

// Run executes one analysis. On any fatal error the run transitions to
// Failed and no partial result is returned.
func (o *Orchestrator) Run(ctx context.Context, strategy AgentStrategy, req Request) (*Result, error) {
	run := &runState{
		id:     uuid.NewString(),
		domain: strategy.Domain(),
		state:  StateIdle,
		logger: o.logger.With(map[string]interface{}{
			"tenantId": req.TenantID,
		}),
	}
	run.logger = run.logger.With(map[string]interface{}{
		"runId":  run.id,
		"domain": run.domain,
	})

	result, err := o.run(ctx, strategy, req, run)
	if err != nil {
		failedAt := run.state
		run.transition(StateFailed)
		metrics.PipelineRunsFailed.WithLabelValues(run.domain, failedAt, string(errors.CodeOf(err))).Inc()
		run.logger.Error("pipeline run failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	run.transition(StateCompleted)
	metrics.PipelineRunsCompleted.WithLabelValues(run.domain).Inc()
	run.logger.Info("pipeline run completed", map[string]interface{}{
		"overallConfidence":     result.OverallConfidence,
		"totalProcessingTimeMs": result.TotalProcessingTimeMs,
	})
	return result, nil
}

// runState tracks one run's lifecycle for logging and failure metrics.
type runState struct {
	id     string
	domain string
	state  string
	logger logger.Logger
}

func (r *runState) transition(state string) {
	r.logger.Debug("run state transition", map[string]interface{}{
		"from": r.state,
		"to":   state,
	})
	r.state = state
}

func (o *Orchestrator) run(ctx context.Context, strategy AgentStrategy, req Request, run *runState) (*Result, error) {
	domainCtx, err := o.store.GetContext(run.domain)
	if err != nil {
		return nil, err
	}

	if validation := processing.ValidateData(req.Input, run.domain); !validation.Valid {
		return nil, errors.NewAnalysisValidationFailedError(validation.FormatErrors())
	}

	run.transition(StateRunningKnowledge)
	knowledgeResult, err := o.runStage(ctx, strategy, StageKnowledge, run, PromptInput{
		Request: req.Input,
		Context: domainCtx,
	})
	if err != nil {
		return nil, err
	}

	run.transition(StateRunningData)
	processed, err := o.processor.Process(req.Input, domainCtx)
	if err != nil {
		return nil, err
	}
	dataResult, err := o.runStage(ctx, strategy, StageData, run, PromptInput{
		Request:   req.Input,
		Context:   domainCtx,
		Processed: processed,
		Knowledge: knowledgeResult.Output,
	})
	if err != nil {
		return nil, err
	}

	run.transition(StateRunningReasoning)
	reasoningResult, err := o.runStage(ctx, strategy, StageReasoning, run, PromptInput{
		Request:   req.Input,
		Context:   domainCtx,
		Processed: processed,
		Knowledge: knowledgeResult.Output,
		Data:      dataResult.Output,
	})
	if err != nil {
		return nil, err
	}

	finalOutput := o.engine.Analyze(processed, domainCtx, reasoning.Options{
		History:               req.History,
		HistoricalScores:      req.HistoricalScores,
		StrategicRequirements: req.StrategicRequirements,
	})

	return &Result{
		RunID:       run.id,
		TenantID:    req.TenantID,
		Domain:      run.domain,
		Knowledge:   knowledgeResult,
		Data:        dataResult,
		Reasoning:   reasoningResult,
		FinalOutput: finalOutput,
		ProcessedData: processed,
		OverallConfidence: models.Clamp01(
			(knowledgeResult.Confidence + dataResult.Confidence + reasoningResult.Confidence) / 3),
		TotalProcessingTimeMs: knowledgeResult.ProcessingTimeMs +
			dataResult.ProcessingTimeMs +
			reasoningResult.ProcessingTimeMs,
	}, nil
}

// runStage issues one consensus call and parses the narrative. A parse
// failure degrades the stage instead of aborting it: the raw narrative
// is kept and the stage confidence drops to DegradedConfidence.
func (o *Orchestrator) runStage(ctx context.Context, strategy AgentStrategy, stage string, run *runState, in PromptInput) (models.EngineResult, error) {
	start := time.Now()

	response, err := o.caller.Call(ctx, consensus.ProviderCall{
		Agent:       run.domain,
		Engine:      stage,
		Prompt:      ComposePrompt(strategy, stage, in),
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
		RequireJSON: true,
	})
	elapsed := time.Since(start)
	metrics.PipelineStageDuration.WithLabelValues(stage, run.domain).Observe(elapsed.Seconds())

	if err != nil {
		return models.EngineResult{}, err
	}

	confidence := response.Confidence
	output, parseErr := strategy.ParseOutput(stage, response.Narrative)
	if parseErr != nil {
		run.logger.Warn("stage output degraded", map[string]interface{}{
			"stage": stage,
			"error": parseErr.Error(),
		})
		output = DefaultStageOutput(response.Narrative)
		confidence = DegradedConfidence
	}

	return models.EngineResult{
		Output:           output,
		Confidence:       confidence,
		ProcessingTimeMs: elapsed.Milliseconds(),
		ProvidersUsed:    []string{response.Provider},
	}, nil
}
