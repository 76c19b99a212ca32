// internal/pipeline/parse.go
package pipeline

import (
	"encoding/json"
	"strings"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/models"
)

// Confidence assigned to a stage whose narrative could not be parsed.
const DegradedConfidence = 0.3

// ParseStageOutput extracts the structured payload from a provider
// narrative. Providers are asked for JSON but frequently wrap it in
// prose, so parsing scans for the outermost object before decoding.
// Failure is returned as an error, not hidden: the caller decides
// whether to degrade or abort.
func ParseStageOutput(text string) (models.StageOutput, error) {
	fragment := extractJSONObject(text)
	if fragment == "" {
		return models.StageOutput{}, errors.NewStageParseFailedError("output", errJSONNotFound)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(fragment), &fields); err != nil {
		return models.StageOutput{}, errors.NewStageParseFailedError("output", err)
	}

	return models.StageOutput{
		Raw:    text,
		Fields: fields,
	}, nil
}

// DefaultStageOutput wraps an unparseable narrative so the stage can
// still complete, visibly degraded.
func DefaultStageOutput(raw string) models.StageOutput {
	return models.StageOutput{
		Raw:      raw,
		Degraded: true,
	}
}

var errJSONNotFound = jsonNotFoundError{}

type jsonNotFoundError struct{}

func (jsonNotFoundError) Error() string { return "no JSON object found in narrative" }

// extractJSONObject returns the substring from the first '{' to the
// last '}', or empty when no object is present.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
