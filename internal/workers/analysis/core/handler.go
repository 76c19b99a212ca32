// internal/workers/analysis/core/handler.go

// Package core implements the shared job-handling skeleton of the
// analysis workers. Each domain package contributes a task type and an
// AgentStrategy; everything else — variable parsing, schema validation,
// history loading, pipeline execution, persistence, notification, and
// job completion — is identical across domains and lives here.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/common/metrics"
	"analysis-workers/internal/common/observability"
	"analysis-workers/internal/common/validation"
	"analysis-workers/internal/history"
	"analysis-workers/internal/notify"
	"analysis-workers/internal/pipeline"
)

// Dependencies bundles the shared collaborators of every analysis
// worker. History, Indexer, Notifier, and Observability are optional;
// a nil value disables that concern.
type Dependencies struct {
	Orchestrator  *pipeline.Orchestrator
	History       *history.Store
	Indexer       *history.Indexer
	Notifier      *notify.Notifier
	Observability *observability.Observability
	Logger        logger.Logger
}

type Handler struct {
	taskType     string
	config       *Config
	strategy     pipeline.AgentStrategy
	deps         Dependencies
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(taskType string, cfg *Config, strategy pipeline.AgentStrategy, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": taskType})
	return &Handler{
		taskType:     taskType,
		config:       cfg,
		strategy:     strategy,
		deps:         deps,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

// Handle runs one analysis job end to end.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(h.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(h.taskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return err
	}

	result, err := h.deps.Orchestrator.Run(ctx, h.strategy, h.buildRequest(ctx, input))
	if err != nil {
		h.failJob(ctx, client, job, err)
		return err
	}

	h.persistAndNotify(ctx, input, result)

	output := &Output{
		RunID:                 result.RunID,
		Domain:                result.Domain,
		Result:                result.FinalOutput,
		OverallConfidence:     result.OverallConfidence,
		TotalProcessingTimeMs: result.TotalProcessingTimeMs,
	}
	if err := h.completeJob(ctx, client, job, output); err != nil {
		return err
	}

	elapsed := time.Since(start)
	metrics.WorkerJobsCompleted.WithLabelValues(h.taskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(h.taskType).Observe(elapsed.Seconds())
	if h.deps.Observability != nil {
		h.deps.Observability.RecordAnalysisProcessed(ctx, result.Domain, "completed")
		h.deps.Observability.RecordAnalysisDuration(ctx, elapsed, result.Domain, "completed")
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":            job.Key,
		"runId":             result.RunID,
		"overallConfidence": result.OverallConfidence,
		"durationMs":        elapsed.Milliseconds(),
	})
	return nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(job.Variables), &raw); err != nil {
		return nil, errors.NewInvalidInputShapeError(fmt.Sprintf("parse job variables: %v", err))
	}

	schemaResult, err := validation.ValidateAgainstSchema(raw, validation.AnalysisRequestSchema())
	if err != nil {
		return nil, errors.NewInvalidInputShapeError(err.Error())
	}
	if !schemaResult.Valid {
		return nil, errors.NewInvalidInputShapeError(schemaResult.FormatErrors())
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputShapeError(fmt.Sprintf("decode input: %v", err))
	}
	return &input, nil
}

// buildRequest assembles the pipeline request, enriching it with prior
// snapshots and scores. History loading is best effort: a failing
// history store degrades trend/consistency scoring to its neutral
// defaults instead of blocking the analysis.
func (h *Handler) buildRequest(ctx context.Context, input *Input) pipeline.Request {
	req := pipeline.Request{
		TenantID:              input.TenantID,
		Input:                 input.Input,
		Industry:              input.Industry,
		StrategicRequirements: input.StrategicRequirements,
	}

	if h.deps.History == nil {
		return req
	}

	domain := h.strategy.Domain()
	snapshots, err := h.deps.History.RecentSnapshots(ctx, input.TenantID, domain, h.config.MaxSnapshots)
	if err != nil {
		h.logger.Warn("history snapshots unavailable", map[string]interface{}{
			"tenantId": input.TenantID,
			"error":    err.Error(),
		})
	} else {
		req.History = snapshots
	}

	scores, err := h.deps.History.RecentScores(ctx, input.TenantID, domain, h.config.MaxSnapshots)
	if err != nil {
		h.logger.Warn("history scores unavailable", map[string]interface{}{
			"tenantId": input.TenantID,
			"error":    err.Error(),
		})
	} else {
		req.HistoricalScores = scores
	}

	return req
}

// persistAndNotify records the run and emits notifications. All three
// are delivery concerns downstream of a successful analysis; their
// failures are logged, not propagated, so the job still completes with
// the result.
func (h *Handler) persistAndNotify(ctx context.Context, input *Input, result *pipeline.Result) {
	if h.deps.History != nil {
		if err := h.deps.History.SaveRun(ctx, result); err != nil {
			h.logger.Error("failed to save run", map[string]interface{}{
				"runId": result.RunID,
				"error": err.Error(),
			})
		}
	}

	if h.deps.Indexer != nil {
		err := h.deps.Indexer.IndexResult(ctx,
			result.RunID, result.TenantID, result.Domain,
			result.OverallConfidence, result.FinalOutput.Metrics.OverallScore,
			result.FinalOutput)
		if err != nil {
			h.logger.Error("failed to index result", map[string]interface{}{
				"runId": result.RunID,
				"error": err.Error(),
			})
		}
	}

	if h.deps.Notifier != nil {
		if err := h.deps.Notifier.PublishCompletion(ctx, result); err != nil {
			h.logger.Warn("failed to publish completion event", map[string]interface{}{
				"runId": result.RunID,
				"error": err.Error(),
			})
		}
		if err := h.deps.Notifier.SendReport(ctx, input.ReportRecipients, result); err != nil {
			h.logger.Warn("failed to send report email", map[string]interface{}{
				"runId": result.RunID,
				"error": err.Error(),
			})
		}
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(h.taskType, string(errors.CodeOf(err))).Inc()
	if h.deps.Observability != nil {
		h.deps.Observability.RecordAnalysisProcessed(ctx, h.strategy.Domain(), "failed")
	}
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
