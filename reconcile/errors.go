// Copyright © 2024 The ansible-powerflex authors

package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingIdentifier is returned when no selector was supplied at all.
	ErrMissingIdentifier = errors.New("no resource identifier provided")

	// ErrInvalidIdentifier is returned when a supplied selector is blank
	// after trimming whitespace.
	ErrInvalidIdentifier = errors.New("invalid resource identifier")

	// ErrInvalidInput is returned for malformed mutation parameters, e.g. a
	// whitespace-only new name.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResourceNotFound is returned when state is present, the resource
	// does not exist and it cannot be created from the supplied parameters.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUnsupportedOperation is returned when the requested lifecycle
	// transition is not permitted for the resource kind.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// RemoteCallError wraps a failed gateway call. The original error is kept
// so callers can still inspect the transport failure.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

func remoteErr(err error, format string, args ...any) error {
	return &RemoteCallError{Op: fmt.Sprintf(format, args...), Err: err}
}
