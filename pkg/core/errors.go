// Package core holds the shared types used across csvprobe packages: the
// error taxonomy every operation reports through, and the JSON float type
// that keeps NaN out of serialized results.
package core

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. Every error crossing an operation
// boundary carries exactly one kind, which transports surface to the caller
// as a tag alongside the message.
type Kind string

const (
	// KindSecurityViolation means a resolved path escapes the data root.
	KindSecurityViolation Kind = "security_violation"
	// KindNotFound means the referenced file does not exist or is not a
	// regular file.
	KindNotFound Kind = "not_found"
	// KindParseError means the CSV content is malformed or has duplicate or
	// empty headers.
	KindParseError Kind = "parse_error"
	// KindValueError means an operation-specific semantic failure, such as a
	// correlation request with no eligible numeric columns.
	KindValueError Kind = "value_error"
)

// Error is a classified operation failure. Failures are deterministic
// functions of caller input and filesystem state, so none of them are
// retryable.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// SecurityViolationf builds a KindSecurityViolation error.
func SecurityViolationf(format string, args ...any) error {
	return &Error{Kind: KindSecurityViolation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ParseErrorf builds a KindParseError error.
func ParseErrorf(format string, args ...any) error {
	return &Error{Kind: KindParseError, Message: fmt.Sprintf(format, args...)}
}

// ValueErrorf builds a KindValueError error.
func ValueErrorf(format string, args ...any) error {
	return &Error{Kind: KindValueError, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err and true if err (or anything it wraps) is a
// classified error.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
