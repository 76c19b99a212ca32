// internal/workers/analysis/core/models.go
package core

import "analysis-workers/internal/models"

// Input is the shared job-variable contract of every analysis worker.
type Input struct {
	TenantID              string                 `json:"tenantId"`
	Input                 map[string]interface{} `json:"input"`
	Industry              string                 `json:"industry,omitempty"`
	StrategicRequirements []string               `json:"strategicRequirements,omitempty"`
	ReportRecipients      []string               `json:"reportRecipients,omitempty"`
}

// Output is published back to the process instance on completion.
type Output struct {
	RunID                 string                `json:"runId"`
	Domain                string                `json:"domain"`
	Result                models.AnalysisResult `json:"result"`
	OverallConfidence     float64               `json:"overallConfidence"`
	TotalProcessingTimeMs int64                 `json:"totalProcessingTimeMs"`
}
