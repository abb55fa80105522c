// Package errors provides error handling for clustergen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//
// Usage:
//
//	// Wrap with context
//	if err := v.ReadInConfig(); err != nil {
//	    return errors.Wrap(errors.Mark(err, errors.ErrConfigParse), "failed to read config")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "create the directory first")
//
//	// Check errors
//	if errors.Is(err, errors.ErrOutputWrite) {
//	    // handle unwritable output
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors for the generation pipeline.
// Wrap these with Mark or Wrap to add context while preserving the type.
var (
	// ErrConfigNotFound indicates the config path does not resolve to a readable file
	ErrConfigNotFound = New("config not found")

	// ErrConfigParse indicates the config is malformed, incomplete or out of range
	ErrConfigParse = New("config parse error")

	// ErrOutputWrite indicates the dataset could not be written to the output directory
	ErrOutputWrite = New("output write error")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the input was malformed or invalid
	ErrInvalidRequest = New("invalid request")
)

// IsConfigError reports whether err belongs to the configuration taxonomy
// (missing file or parse failure).
func IsConfigError(err error) bool {
	return err != nil && IsAny(err, ErrConfigNotFound, ErrConfigParse)
}

// IsOutputWriteError checks if an error is or wraps ErrOutputWrite
func IsOutputWriteError(err error) bool {
	return err != nil && Is(err, ErrOutputWrite)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewConfigParseError creates a config parse error with a formatted message
func NewConfigParseError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrConfigParse)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidRequest)
}

// WrapOutputWrite marks err as an output write failure and adds context
func WrapOutputWrite(err error, context string) error {
	return Wrap(Mark(err, ErrOutputWrite), context)
}
