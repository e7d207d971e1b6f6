// Package apperr classifies pipeline failures by kind.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies which pipeline step failed.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindRead
	KindNetwork
	KindParse
	KindWrite
	KindNoMatch
)

var (
	ErrRead    = &Error{Kind: KindRead}
	ErrNetwork = &Error{Kind: KindNetwork}
	ErrParse   = &Error{Kind: KindParse}
	ErrWrite   = &Error{Kind: KindWrite}
	ErrNoMatch = &Error{Kind: KindNoMatch}
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read_failure"
	case KindNetwork:
		return "network_failure"
	case KindParse:
		return "parse_failure"
	case KindWrite:
		return "write_failure"
	case KindNoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// ExitCode is the process exit status for a failure of this kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindRead:
		return 2
	case KindNetwork:
		return 3
	case KindParse:
		return 4
	case KindWrite:
		return 5
	case KindNoMatch:
		return 6
	default:
		return 1
	}
}

// Error tags an underlying error with a Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrParse) works
// regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Wrap tags err with kind. A nil err yields nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Wrapf tags a formatted error with kind.
func Wrapf(kind Kind, format string, a ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, a...)}
}

// KindOf returns the kind of the outermost tagged error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps err to a process exit status. A nil err yields 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
