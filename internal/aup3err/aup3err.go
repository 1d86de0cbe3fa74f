// Package aup3err declares the error-kind taxonomy used across aup3tool so
// callers can branch on classification without string matching, the way
// spindle's queue package lets workflow code branch on ErrorClassifier.
package aup3err

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting and propagation-policy purposes.
type Kind string

const (
	Truncated               Kind = "truncated"
	BadOpcode               Kind = "bad_opcode"
	BadCharSize             Kind = "bad_char_size"
	UndeclaredName          Kind = "undeclared_name"
	UnknownName             Kind = "unknown_name"
	UnsupportedVersion      Kind = "unsupported_version"
	DbCorrupt               Kind = "db_corrupt"
	DbOther                 Kind = "db_other"
	RecoveryHelperFailed    Kind = "recovery_helper_failed"
	BlockMissing            Kind = "block_missing"
	BlockFormatMismatch     Kind = "block_format_mismatch"
	BlobSizeMismatch        Kind = "blob_size_mismatch"
	IoFailed                Kind = "io_failed"
	UnsupportedSampleFormat Kind = "unsupported_sample_format"
)

// Error pairs a Kind with a message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, aup3err.New(aup3err.Truncated, "")).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind around a lower-level cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, and reports whether one was found.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
