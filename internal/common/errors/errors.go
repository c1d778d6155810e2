// Package errors provides the request error taxonomy for the gateway.
//
// Validation and authorization failures are client-correctable and carry the
// exact message the caller sees; persistence and upstream failures are system
// faults with sanitized messages. Notification failures never become request
// errors at all; they are logged and swallowed at the call site.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeAuthorizationFailed ErrorCode = "AUTHORIZATION_FAILED"
	ErrCodePersistenceFailed   ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeNotConfigured       ErrorCode = "NOT_CONFIGURED"
	ErrCodeUpstreamRejected    ErrorCode = "UPSTREAM_REJECTED"
	ErrCodeUpstreamUnreachable ErrorCode = "UPSTREAM_UNREACHABLE"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
)

// RequestError is a structured error terminating an HTTP request. Message is
// what the caller receives in the {error: ...} body; Details stays in logs.
type RequestError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("RequestError[%s]: %s", e.Code, e.Message)
}

// NewValidationError creates a 400 error with a caller-facing message.
// The message is part of the API contract, not a diagnostic.
func NewValidationError(message string) *RequestError {
	return &RequestError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthorizationError creates a 403 error for a caller lacking the role.
func NewAuthorizationError(message string) *RequestError {
	return &RequestError{
		Code:      ErrCodeAuthorizationFailed,
		Message:   message,
		Status:    http.StatusForbidden,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceError creates a 500 error for a failed durable-store write.
func NewPersistenceError(err error) *RequestError {
	return &RequestError{
		Code:      ErrCodePersistenceFailed,
		Message:   "Failed to save submission",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotConfiguredError creates a 503 error distinguishing "not deployed
// here" from a configured-but-failing dependency.
func NewNotConfiguredError(message string) *RequestError {
	return &RequestError{
		Code:      ErrCodeNotConfigured,
		Message:   message,
		Status:    http.StatusServiceUnavailable,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamRejectedError creates a 400 error carrying only the upstream
// error's message, never its code or metadata.
func NewUpstreamRejectedError(message string) *RequestError {
	return &RequestError{
		Code:      ErrCodeUpstreamRejected,
		Message:   message,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnreachableError creates a 502 error for transport-level
// failures reaching the tool server.
func NewUpstreamUnreachableError(err error) *RequestError {
	return &RequestError{
		Code:      ErrCodeUpstreamUnreachable,
		Message:   "MCP server unreachable: " + err.Error(),
		Status:    http.StatusBadGateway,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a 429 error for the intake limiter.
func NewRateLimitedError() *RequestError {
	return &RequestError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests",
		Status:    http.StatusTooManyRequests,
		Timestamp: time.Now().UTC(),
	}
}
