// Package errors provides unified error handling for testhost. It
// implements structured error types with machine-readable codes, HTTP
// status mapping, and retryable detection.
//
// The one classification that matters to test authors: resolving a
// service that was never registered is a missing-dependency error. It is
// fatal and non-retryable; the test must abort immediately.
package errors
