package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status code associated with this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// MissingDependency creates an error for a service key that is not
// present in the finalized registry.
func MissingDependency(key string) *AppError {
	return &AppError{
		Code: ErrCodeMissingDependency, Message: fmt.Sprintf("service %q is not registered", key),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"service": key},
	}
}

// BadConstructor creates an error for a constructor that could not be invoked.
func BadConstructor(key, reason string) *AppError {
	return &AppError{
		Code: ErrCodeBadConstructor, Message: fmt.Sprintf("constructor for %q: %s", key, reason),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"service": key},
	}
}

// RegistryFinalized creates an error for a write to a finalized registry.
func RegistryFinalized(key string) *AppError {
	return &AppError{
		Code: ErrCodeRegistryFinalized, Message: fmt.Sprintf("registry is finalized, cannot bind %q", key),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"service": key},
	}
}

// FixtureState creates an error for an operation in the wrong fixture state.
func FixtureState(reason string) *AppError {
	return &AppError{
		Code: ErrCodeFixtureState, Message: reason,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
	}
}

// Timeout creates an error for a request that timed out.
func Timeout(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "request timed out",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true, Cause: cause,
	}
}

// ConnectionFailed creates an error for a failed connection.
func ConnectionFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: "unable to connect to test server",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true, Cause: cause,
	}
}

// Unauthorized creates an error for a rejected request (401/403).
func Unauthorized(status int) *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: fmt.Sprintf("HTTP %d", status),
		HTTPStatus: status, Retryable: false,
	}
}

// NotFound creates an error for a resource that was not found.
func NotFound() *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "HTTP 404",
		HTTPStatus: http.StatusNotFound, Retryable: false,
	}
}

// InvalidInput creates an error for a rejected request body or parameters.
func InvalidInput(status int) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("HTTP %d", status),
		HTTPStatus: status, Retryable: false,
	}
}

// Server creates an error for a server-side failure (5xx).
func Server(status int) *AppError {
	return &AppError{
		Code: ErrCodeServer, Message: fmt.Sprintf("HTTP %d", status),
		HTTPStatus: status, Retryable: true,
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// --- Inspection helpers ---

// IsMissingDependency checks whether err is a missing-dependency error.
func IsMissingDependency(err error) bool {
	return HasCode(err, ErrCodeMissingDependency)
}

// HasCode checks whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var e *AppError
	return errors.As(err, &e) && e.Code == code
}

// IsRetryable checks whether err is a retryable AppError.
func IsRetryable(err error) bool {
	var e *AppError
	return errors.As(err, &e) && e.Retryable
}
