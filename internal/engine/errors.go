package engine

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure. Every error returned by Execute is an
// *Error carrying one of these, so callers can branch without string
// matching.
type Kind int

const (
	KindParse Kind = iota + 1
	KindTableNotFound
	KindColumnNotFound
	KindTypeMismatch
	KindConstraintViolation
	KindArityMismatch
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindTableNotFound:
		return "table not found"
	case KindColumnNotFound:
		return "column not found"
	case KindTypeMismatch:
		return "type mismatch"
	case KindConstraintViolation:
		return "constraint violation"
	case KindArityMismatch:
		return "arity mismatch"
	case KindPersistence:
		return "persistence failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a typed engine failure. Parse and validation failures are
// recoverable (fix the statement and resubmit); KindPersistence means the
// in-memory state may no longer match the snapshot on disk.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func errf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an engine error, or 0 for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
