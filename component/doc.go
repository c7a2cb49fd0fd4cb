// Package component defines the lifecycle contract shared by everything
// a fixture manager can start, stop, and health-check.
package component
