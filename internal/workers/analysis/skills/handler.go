// internal/workers/analysis/skills/handler.go

// Package skills hosts the analyze-skills job worker: the three-stage
// analysis pipeline applied to an organization's skill inventory.
package skills

import (
	"analysis-workers/internal/workers/analysis/core"
)

func NewHandler(cfg *core.Config, deps core.Dependencies) *core.Handler {
	return core.NewHandler(TaskType, cfg, NewStrategy(), deps)
}
