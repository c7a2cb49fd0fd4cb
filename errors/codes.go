package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Container errors
const (
	// ErrCodeMissingDependency indicates a service key is not present in
	// the finalized registry. Fatal configuration error.
	ErrCodeMissingDependency ErrorCode = "MISSING_DEPENDENCY"
	// ErrCodeBadConstructor indicates a constructor has an unsupported
	// signature or failed to produce an instance.
	ErrCodeBadConstructor ErrorCode = "BAD_CONSTRUCTOR"
	// ErrCodeRegistryFinalized indicates a write to a finalized registry.
	ErrCodeRegistryFinalized ErrorCode = "REGISTRY_FINALIZED"
)

// Fixture errors
const (
	// ErrCodeFixtureState indicates an operation in the wrong fixture
	// state (e.g. overriding a service after the host started).
	ErrCodeFixtureState ErrorCode = "FIXTURE_STATE"
)

// HTTP errors surfaced by the test client
const (
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeConnectionFailed indicates a failed connection to the test server.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeUnauthorized indicates the request is unauthorized (401/403).
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid (other 4xx).
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer ErrorCode = "SERVER_ERROR"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:           true,
	ErrCodeConnectionFailed:  true,
	ErrCodeServer:            true,
	ErrCodeMissingDependency: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
