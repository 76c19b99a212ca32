// internal/consensus/types.go

// Package consensus fans one prompt out to an ensemble of external
// model providers, combines their answers under a weighting strategy,
// and returns the winning response only when the combined confidence
// clears the configured floor.
package consensus

// Pipeline engines a call can target.
const (
	EngineKnowledge = "knowledge"
	EngineData      = "data"
	EngineReasoning = "reasoning"
)

// ProviderCall is one request to the provider ensemble.
type ProviderCall struct {
	Agent       string  `json:"agent"`
	Engine      string  `json:"engine"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	RequireJSON bool    `json:"requireJson,omitempty"`
}

// ProviderResponse is the winning answer of a consensus call. Provider
// names the source of the winning narrative; Confidence carries the
// combined ensemble confidence, not the winner's own.
type ProviderResponse struct {
	Narrative  string  `json:"narrative"`
	Confidence float64 `json:"confidence"` // [0,1]
	Provider   string  `json:"provider"`
}
