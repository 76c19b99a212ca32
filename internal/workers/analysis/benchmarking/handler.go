// internal/workers/analysis/benchmarking/handler.go

// Package benchmarking hosts the analyze-benchmarking job worker.
package benchmarking

import (
	"analysis-workers/internal/workers/analysis/core"
)

func NewHandler(cfg *core.Config, deps core.Dependencies) *core.Handler {
	return core.NewHandler(TaskType, cfg, NewStrategy(), deps)
}
