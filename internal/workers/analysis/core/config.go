// internal/workers/analysis/core/config.go
package core

import (
	"time"

	"analysis-workers/internal/common/config"
)

// Config holds the per-worker settings every analysis worker shares.
type Config struct {
	Timeout      time.Duration
	MaxSnapshots int
}

// LoadConfig resolves a worker's config from the application config,
// falling back to defaults when the worker has no dedicated block.
func LoadConfig(cfg *config.Config, workerName string) *Config {
	out := &Config{
		Timeout:      30 * time.Second,
		MaxSnapshots: 12,
	}

	if wc, ok := cfg.Workers[workerName]; ok && wc.Timeout > 0 {
		out.Timeout = time.Duration(wc.Timeout) * time.Millisecond
	}
	if cfg.History.MaxSnapshots > 0 {
		out.MaxSnapshots = cfg.History.MaxSnapshots
	}

	return out
}
