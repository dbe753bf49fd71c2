// Package mixerr defines the error kinds raised by the mixing console.
package mixerr

import "errors"

// Sentinel errors for the error kinds named by the console's design.
// Callers match with errors.Is; wrapped errors carry the offending
// name/value via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidParameter is raised when a value is out of bounds or not
	// among a string parameter's options.
	ErrInvalidParameter = errors.New("mixconsole: invalid parameter value")

	// ErrInvalidConstruction is raised for malformed construction:
	// missing bounds/options, a non-power-of-two block size, or
	// duplicate names in a list.
	ErrInvalidConstruction = errors.New("mixconsole: invalid construction")

	// ErrMissingProcessor is raised by ProcessorList.Get on an absent name.
	ErrMissingProcessor = errors.New("mixconsole: missing processor")

	// ErrResourceError is raised when an impulse-response file is
	// missing or its sample rate does not match the console's.
	ErrResourceError = errors.New("mixconsole: resource error")

	// ErrUnsupportedOperation is raised for operations invalid for a
	// parameter's kind, e.g. a normal-distribution draw on a non-float.
	ErrUnsupportedOperation = errors.New("mixconsole: unsupported operation")
)
