// internal/workers/analysis/performance/handler.go

// Package performance hosts the analyze-performance job worker.
package performance

import (
	"analysis-workers/internal/workers/analysis/core"
)

func NewHandler(cfg *core.Config, deps core.Dependencies) *core.Handler {
	return core.NewHandler(TaskType, cfg, NewStrategy(), deps)
}
