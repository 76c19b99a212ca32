// Package processing implements the data processor of the analysis
// pipeline: cleaning, normalization, structuring, and quality metadata
// for raw organizational input. Every function here is a pure mapping
// from its inputs to a new value; the processor holds no mutable state
// and is safe to share across concurrent analyses.
package processing

import (
	"time"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/models"
)

type Processor struct {
	logger logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	return &Processor{
		logger: log.With(map[string]interface{}{
			"component": "data-processor",
		}),
	}
}

// Process runs the full transformation: raw input plus domain context
// to a ProcessedData value. The result is built once and must be
// treated as immutable by callers.
func (p *Processor) Process(raw map[string]interface{}, ctx models.DomainContext) (models.ProcessedData, error) {
	if raw == nil {
		return models.ProcessedData{}, errors.NewInvalidInputShapeError("raw input is nil")
	}

	start := time.Now()

	cleaned := Clean(raw)
	normalized := Normalize(cleaned)

	// Completeness is judged against the raw top-level keys, before
	// cleaning drops the empty ones.
	completeness := Completeness(raw)
	anomalies := DetectAnomalies(cleaned)
	complexity := Complexity(cleaned)

	structured := Structure(cleaned, ctx, completeness)

	metadata := models.ProcessingMetadata{
		RecordCount:      RecordCount(cleaned),
		Completeness:     completeness,
		Quality:          Quality(completeness, complexity, len(anomalies)),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Anomalies:        anomalies,
	}

	p.logger.Debug("processing complete", map[string]interface{}{
		"domain":       ctx.Domain,
		"recordCount":  metadata.RecordCount,
		"completeness": metadata.Completeness,
		"quality":      metadata.Quality,
		"anomalies":    len(anomalies),
	})

	return models.ProcessedData{
		Cleaned:    cleaned,
		Normalized: normalized,
		Structured: structured,
		Metadata:   metadata,
	}, nil
}

// toFloat converts the numeric types JSON decoding and in-process
// callers produce. ok is false for non-numeric values.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
