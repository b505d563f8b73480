package gateway

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by gateway implementations.
var (
	// ErrNotFound is returned by ReadFile when the target does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrCancelled is returned by RequestCompletion when the caller's context
	// was cancelled before a response arrived.
	ErrCancelled = errors.New("completion cancelled")

	// ErrUnauthorized is returned by RequestCompletion on an authentication
	// failure. It is surfaced to the user as a non-fatal banner.
	ErrUnauthorized = errors.New("completion unauthorized")
)

// IOError wraps a filesystem failure with the operation and path.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

// NetworkError wraps a completion transport failure.
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Cause }
