// internal/processing/validate.go
package processing

import (
	"fmt"

	"analysis-workers/internal/knowledge"
)

// Rule kinds, applied in table order.
const (
	RuleRequired  = "required"
	RuleFormat    = "format"
	RuleRange     = "range"
	RuleReference = "reference"
)

// Rule is one entry of a per-domain validation table. Predicate
// receives the field value (nil when absent) and reports acceptance.
type Rule struct {
	Field     string
	Kind      string
	Predicate func(value interface{}) bool
	Message   string
}

// ValidationResult reports rule outcomes; the input is never mutated
// or filtered.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateData applies the ordered rule table for a domain. Required
// rules run against field presence; other kinds are skipped when the
// field is absent.
func ValidateData(data map[string]interface{}, domain string) ValidationResult {
	var validationErrors []string

	for _, rule := range rulesForDomain(domain) {
		value, present := data[rule.Field]

		if rule.Kind == RuleRequired {
			if !present || isEmptyValue(value) {
				validationErrors = append(validationErrors, rule.Message)
			}
			continue
		}

		if !present {
			continue
		}
		if !rule.Predicate(value) {
			validationErrors = append(validationErrors, rule.Message)
		}
	}

	return ValidationResult{
		Valid:  len(validationErrors) == 0,
		Errors: validationErrors,
	}
}

// rulesForDomain returns the ordered rule table for a domain. Domains
// without a dedicated table get the base rules only.
func rulesForDomain(domain string) []Rule {
	base := []Rule{
		{
			Field:   "tenantId",
			Kind:    RuleRequired,
			Message: "tenantId is required",
		},
	}

	switch domain {
	case knowledge.DomainSkills:
		return append(base,
			Rule{
				Field: "skills",
				Kind:  RuleFormat,
				Predicate: func(v interface{}) bool {
					_, ok := v.([]interface{})
					return ok
				},
				Message: "skills must be a list",
			},
			Rule{
				Field: "employeeCount",
				Kind:  RuleRange,
				Predicate: func(v interface{}) bool {
					n, ok := toFloat(v)
					return ok && n >= 0
				},
				Message: "employeeCount must be a non-negative number",
			},
		)

	case knowledge.DomainPerformance, knowledge.DomainEngagement, knowledge.DomainCulture:
		return append(base,
			Rule{
				Field: "surveyResponses",
				Kind:  RuleFormat,
				Predicate: func(v interface{}) bool {
					_, ok := v.([]interface{})
					return ok
				},
				Message: "surveyResponses must be a list",
			},
			Rule{
				Field: "responseRate",
				Kind:  RuleRange,
				Predicate: func(v interface{}) bool {
					n, ok := toFloat(v)
					return ok && n >= 0 && n <= 1
				},
				Message: "responseRate must be within [0,1]",
			},
		)

	case knowledge.DomainBenchmarking:
		return append(base,
			Rule{
				Field: "industry",
				Kind:  RuleReference,
				Predicate: func(v interface{}) bool {
					s, ok := v.(string)
					return ok && s != ""
				},
				Message: "industry must be a non-empty string",
			},
			Rule{
				Field: "employeeCount",
				Kind:  RuleRange,
				Predicate: func(v interface{}) bool {
					n, ok := toFloat(v)
					return ok && n > 0
				},
				Message: "employeeCount must be a positive number",
			},
		)
	}

	return base
}

// FormatErrors renders a single diagnostic string for logs and error
// details.
func (r ValidationResult) FormatErrors() string {
	if r.Valid {
		return ""
	}
	return fmt.Sprintf("%d validation error(s): %v", len(r.Errors), r.Errors)
}
