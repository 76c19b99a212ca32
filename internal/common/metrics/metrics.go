// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of each analysis pipeline stage in seconds",
		},
		[]string{"stage", "domain"},
	)

	PipelineRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_completed_total",
			Help: "Total number of completed analysis pipeline runs",
		},
		[]string{"domain"},
	)

	PipelineRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_failed_total",
			Help: "Total number of failed analysis pipeline runs",
		},
		[]string{"domain", "stage", "error_code"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "provider_call_duration_seconds",
			Help: "Duration of individual model provider calls in seconds",
		},
		[]string{"provider", "engine"},
	)

	ProviderCallsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_failed_total",
			Help: "Total number of failed model provider calls",
		},
		[]string{"provider", "engine"},
	)

	ConsensusConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consensus_confidence",
			Help:    "Combined confidence of consensus responses",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"engine"},
	)

	ConsensusCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consensus_cache_hits_total",
			Help: "Total number of consensus cache hits",
		},
		[]string{"engine"},
	)
)
