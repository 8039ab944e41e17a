// Package clients provides the instrumented HTTP client used to reach the
// remote quote API.
package clients

import "errors"

// Client errors describe transport failures. The acl package translates
// them into domain errors.
var (
	// ErrCircuitOpen is returned without sending when the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrTransport wraps network, timeout and cancellation failures.
	ErrTransport = errors.New("transport failure")
)
