// Package logger provides structured logging for testhost, backed by
// zerolog. Fixtures and containers log through component-tagged
// sub-loggers; a package-level global is available for code that has no
// logger wired in.
package logger
