// internal/workers/analysis/engagement/handler.go

// Package engagement hosts the analyze-engagement job worker.
package engagement

import (
	"analysis-workers/internal/workers/analysis/core"
)

func NewHandler(cfg *core.Config, deps core.Dependencies) *core.Handler {
	return core.NewHandler(TaskType, cfg, NewStrategy(), deps)
}
