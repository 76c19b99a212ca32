// Package errors provides standardized error handling for the analysis
// pipeline and its BPMN worker surface.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Knowledge store
	ErrCodeUnknownDomain ErrorCode = "UNKNOWN_DOMAIN"

	// Consensus provider caller
	ErrCodeConsensusBelowThreshold ErrorCode = "CONSENSUS_BELOW_THRESHOLD"
	ErrCodeProviderCallFailed      ErrorCode = "PROVIDER_CALL_FAILED"
	ErrCodeProviderTimeout         ErrorCode = "PROVIDER_TIMEOUT"

	// Pipeline stages
	ErrCodeStageParseFailed ErrorCode = "STAGE_PARSE_FAILED"

	// Data processing
	ErrCodeInvalidInputShape        ErrorCode = "INVALID_INPUT_SHAPE"
	ErrCodeAnalysisValidationFailed ErrorCode = "ANALYSIS_VALIDATION_FAILED"

	// Persistence and delivery
	ErrCodeHistoryQueryFailed     ErrorCode = "HISTORY_QUERY_FAILED"
	ErrCodeResultIndexFailed      ErrorCode = "RESULT_INDEX_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HasCode reports whether err is a StandardError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// CodeOf extracts the error code from a StandardError chain, or
// "INTERNAL" for unclassified errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrorCode("INTERNAL")
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewUnknownDomainError creates a non-retryable knowledge lookup error.
func NewUnknownDomainError(domain string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownDomain,
		Message:   "No domain context registered for domain",
		Details:   fmt.Sprintf("domain: %s", domain),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConsensusBelowThresholdError creates a retryable consensus error.
func NewConsensusBelowThresholdError(got, want float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeConsensusBelowThreshold,
		Message:   "Combined provider confidence below configured floor",
		Details:   fmt.Sprintf("confidence: %.3f, minConfidence: %.3f", got, want),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderCallFailedError creates a retryable provider transport error.
func NewProviderCallFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderCallFailed,
		Message:   "Model provider call failed",
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError creates a retryable provider timeout error.
func NewProviderTimeoutError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   "Model provider call exceeded timeout",
		Details:   fmt.Sprintf("provider: %s", provider),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStageParseFailedError creates a non-retryable parse error. The
// orchestrator recovers from this locally with a degraded stage output;
// it only surfaces when callers ask for strict parsing.
func NewStageParseFailedError(stage string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStageParseFailed,
		Message:   "Stage output could not be parsed",
		Details:   fmt.Sprintf("stage: %s, error: %s", stage, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputShapeError creates a non-retryable processing error.
func NewInvalidInputShapeError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInputShape,
		Message:   "Raw input shape cannot be processed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisValidationFailedError creates a non-retryable validation error.
func NewAnalysisValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisValidationFailed,
		Message:   "Analysis input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryFailedError creates a retryable history store error.
func NewHistoryQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryQueryFailed,
		Message:   "Analysis history query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultIndexFailedError creates a retryable result indexing error.
func NewResultIndexFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultIndexFailed,
		Message:   "Analysis result indexing failed",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Completion notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
// The two vocabularies are identical by convention.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeUnknownDomain:            "UNKNOWN_DOMAIN",
	ErrCodeConsensusBelowThreshold:  "CONSENSUS_BELOW_THRESHOLD",
	ErrCodeProviderCallFailed:       "PROVIDER_CALL_FAILED",
	ErrCodeProviderTimeout:          "PROVIDER_TIMEOUT",
	ErrCodeStageParseFailed:         "STAGE_PARSE_FAILED",
	ErrCodeInvalidInputShape:        "INVALID_INPUT_SHAPE",
	ErrCodeAnalysisValidationFailed: "ANALYSIS_VALIDATION_FAILED",
	ErrCodeHistoryQueryFailed:       "HISTORY_QUERY_FAILED",
	ErrCodeResultIndexFailed:        "RESULT_INDEX_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProviderCallFailed,
		ErrCodeHistoryQueryFailed,
		ErrCodeResultIndexFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeConsensusBelowThreshold,
		ErrCodeProviderTimeout:
		return 1 // At most one fresh consensus round

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DOMAIN"):
		return "KNOWLEDGE"
	case strings.Contains(codeStr, "CONSENSUS") || strings.Contains(codeStr, "PROVIDER"):
		return "CONSENSUS"
	case strings.Contains(codeStr, "STAGE"):
		return "PIPELINE"
	case strings.Contains(codeStr, "INPUT") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "HISTORY") || strings.Contains(codeStr, "INDEX"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
