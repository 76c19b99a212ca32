// internal/workers/analysis/culture/handler.go

// Package culture hosts the analyze-culture job worker.
package culture

import (
	"analysis-workers/internal/workers/analysis/core"
)

func NewHandler(cfg *core.Config, deps core.Dependencies) *core.Handler {
	return core.NewHandler(TaskType, cfg, NewStrategy(), deps)
}
