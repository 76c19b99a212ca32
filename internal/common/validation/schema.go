// internal/common/validation/schema.go

// Package validation checks worker job variables against JSON schemas
// before a job reaches its handler, so malformed process variables fail
// fast with a non-retryable error instead of surfacing mid-pipeline.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Result reports schema validation outcomes.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateAgainstSchema validates data against a schema expressed as a
// Go map (draft-07 JSON Schema vocabulary).
func ValidateAgainstSchema(data map[string]interface{}, schema map[string]interface{}) (*Result, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed to run: %w", err)
	}

	if result.Valid() {
		return &Result{Valid: true}, nil
	}

	validationErrors := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}

	return &Result{Valid: false, Errors: validationErrors}, nil
}

// FormatErrors renders a single diagnostic string.
func (r *Result) FormatErrors() string {
	if r.Valid {
		return ""
	}
	return strings.Join(r.Errors, "; ")
}

// AnalysisRequestSchema is the shared input contract of every analysis
// worker: a tenant, a free-form input object, and optional strategic
// requirements.
func AnalysisRequestSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"tenantId": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"input": map[string]interface{}{
				"type": "object",
			},
			"industry": map[string]interface{}{
				"type": "string",
			},
			"strategicRequirements": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
				},
			},
			"reportRecipients": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":   "string",
					"format": "email",
				},
			},
		},
		"required": []interface{}{"tenantId", "input"},
	}
}
