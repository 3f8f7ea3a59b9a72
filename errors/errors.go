// Package errors provides error handling for partgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints (used to list legal values on configuration errors)
//
// Usage:
//
//	// Wrap with context
//	if err := w.Flush(); err != nil {
//	    return errors.Wrap(err, "failed to flush partition sink")
//	}
//
//	// Report an unknown registry name together with every legal one
//	return errors.NewUnknownNameError(errors.ErrUnknownAlgorithm, "algorithm", name, reg.Algorithms(mode))
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
)

// User-facing hints
var (
	WithHint = crdb.WithHint
)

// Error inspection
var (
	Is          = crdb.Is
	IsAny       = crdb.IsAny
	GetAllHints = crdb.GetAllHints
)

// Sentinel errors for partgen.
// Configuration sentinels are detected before any generation starts;
// wrap them with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnknownMode indicates a mode other than the supported ones
	ErrUnknownMode = New("unknown mode")

	// ErrUnknownAlgorithm indicates no generator is registered under the name
	ErrUnknownAlgorithm = New("unknown algorithm")

	// ErrUnknownVisitor indicates no visitor is registered under the name
	ErrUnknownVisitor = New("unknown visitor")

	// ErrUnknownFormat indicates an unsupported output format
	ErrUnknownFormat = New("unknown format")

	// ErrMissingInput indicates neither a batch file nor an (n, k) pair was given
	ErrMissingInput = New("missing input")

	// ErrInvalidInput indicates malformed batch input
	ErrInvalidInput = New("invalid input")

	// ErrCountOverflow indicates a partition count does not fit in 64 bits
	ErrCountOverflow = New("count overflow")
)

// NewUnknownNameError reports name as not being one of valid.
// Every legal value is attached as a separate hint, in order, so callers can
// print the full list with GetAllHints.
func NewUnknownNameError(sentinel error, kind, name string, valid []string) error {
	err := Wrapf(sentinel, "%s %q", kind, name)
	for _, v := range valid {
		err = WithHint(err, v)
	}
	return err
}

// IsConfigError checks if an error is a pre-flight configuration error
func IsConfigError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnknownMode,
		ErrUnknownAlgorithm,
		ErrUnknownVisitor,
		ErrUnknownFormat,
		ErrMissingInput,
	)
}

// IsInvalidInputError checks if an error is or wraps ErrInvalidInput
func IsInvalidInputError(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}
