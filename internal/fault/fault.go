// Package fault defines the typed error taxonomy shared by the merge core.
//
// Every failure surfaced to a caller carries the operation that failed and,
// where one exists, the offending path. Callers classify with errors.Is
// against the Kind sentinels rather than string matching.
package fault

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind sentinels. Wrap them with New so errors.Is works through %w chains.
var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrMalformed    = errors.New("malformed input")
	ErrInternal     = errors.New("internal inconsistency")
	ErrCancelled    = errors.New("cancelled by caller")
)

// Error ties a Kind sentinel to the operation and path where it happened.
type Error struct {
	Op   string // e.g. "read", "write", "hash", "scan"
	Path string // may be empty for non-path failures
	Err  error  // wraps one of the Kind sentinels, possibly via an os error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a taxonomy error from a Kind sentinel.
func New(kind error, op, path string) *Error {
	return &Error{Op: op, Path: path, Err: kind}
}

// Newf builds a taxonomy error with an underlying cause attached.
func Newf(kind error, op, path string, cause error) *Error {
	if cause == nil {
		return New(kind, op, path)
	}
	return &Error{Op: op, Path: path, Err: fmt.Errorf("%w: %w", kind, cause)}
}

// FromFS classifies a filesystem error into the taxonomy. Unrecognized
// errors pass through wrapped so the op/path context is preserved.
func FromFS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Newf(ErrNotFound, op, path, err)
	case errors.Is(err, fs.ErrPermission):
		return Newf(ErrAccessDenied, op, path, err)
	default:
		return &Error{Op: op, Path: path, Err: err}
	}
}

// Cancelled reports a caller-driven cancellation of op, preserving whatever
// partial progress the caller packaged alongside it.
func Cancelled(op string) *Error {
	return New(ErrCancelled, op, "")
}
