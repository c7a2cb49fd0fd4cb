// Package config loads fixture settings from the environment. Settings
// are supplied in-memory by calling code in most tests; the loader
// exists so CI environments can tune logging, client timeouts, and the
// test-auth secret without code changes.
//
// Precedence: explicit values set by the caller, then environment
// variables (TESTHOST_ prefix), then an optional .env file, then defaults.
package config
