// Package apierror provides the error response envelopes used by every
// 4xx/5xx HTTP response. All errors returned to clients go through this
// package so that internal details (stack traces, SQL errors, upstream
// payloads) never leak.
package apierror

// APIError is the canonical envelope for a single-message error.
type APIError struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Error: ErrorBody{Message: msg}}
}

// Issue is one field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError wraps multiple field-level issues.
type ValidationError struct {
	Error ValidationBody `json:"error"`
}

type ValidationBody struct {
	Message string  `json:"message"`
	Issues  []Issue `json:"issues"`
}

func NewValidation(issues []Issue) *ValidationError {
	return &ValidationError{Error: ValidationBody{Message: "Validation failed", Issues: issues}}
}
