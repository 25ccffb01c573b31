package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s returned status %d", e.Path, e.StatusCode)
}

// TransportError is a failure to complete the round trip at all: DNS,
// connection refused, timeout, or an undecodable response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsUnreachable reports whether err should send the caller down a local
// fallback path. API errors and transport errors are treated identically:
// the backend did not produce a usable answer.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return true
	}
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
