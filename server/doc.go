// Package server provides the in-process HTTP test server a fixture
// hosts routes on. It wraps a Gin engine in test mode behind an
// httptest.Server, with h2c so HTTP/2 cleartext clients work the same
// way they do against the production server stack.
package server
