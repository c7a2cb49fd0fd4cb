// Package client is the HTTP client a fixture hands to tests. It wraps
// net/http with the fixture's base URL, typed verb helpers, and the two
// wire conventions the host guarantees: request bodies are encoded with
// camelCase property names, and response bodies decode with
// case-insensitive property matching (encoding/json's default).
package client
