package errors

import (
	"encoding/json"
	"fmt"
)

// ClassifyHTTPError determines whether an HTTP error should be retried:
// 4xx client errors (except 408/429) are irrecoverable, 5xx server errors
// and network-level errors are recoverable.
func ClassifyHTTPError(statusCode int, body string, underlyingErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: underlyingErr,
	}
}

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408: // Request Timeout - can retry
			return Recoverable
		case 429: // Too Many Requests - should retry with backoff
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes - be conservative and retry
		return Recoverable
	}
}

// StatusRecoverable reports whether a retry of the same call could succeed.
func StatusRecoverable(statusCode int) bool {
	return getHTTPErrorCategory(statusCode) == Recoverable
}

// NewHTTPError creates a classified error for HTTP failures.
func NewHTTPError(statusCode int, body string, operation string) *ClassifiedError {
	underlyingErr := fmt.Errorf("%s failed: HTTP %d", operation, statusCode)
	return ClassifyHTTPError(statusCode, body, underlyingErr)
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// APIError carries the backend's own error body so destructive failures
// (withdraw, credential mismatch) can be surfaced to the user verbatim.
type APIError struct {
	Status  int
	Message string
	Path    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// ParseAPIError builds an APIError from a non-2xx response, preserving the
// backend's {error, path} body when it decodes, and a generic HTTP message
// otherwise.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{Status: statusCode}
	var wire struct {
		Error string `json:"error"`
		Path  string `json:"path"`
	}
	if err := json.Unmarshal(body, &wire); err == nil {
		apiErr.Message = wire.Error
		apiErr.Path = wire.Path
	}
	return apiErr
}
