package pkg

import (
	"fmt"
	"slices"
	"strings"
)

// Error is a chain of errors in which each element is wrapped by the one
// before it. It reports errors that end the process before a command runs.
type Error []error

// ErrCreateDir is returned when a runtime directory cannot be created.
var ErrCreateDir = MakeErrorf("create directory")

// MakeError returns the chain of the non-nil errs.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, err)
		}
	}

	return e
}

// MakeErrorf returns a chain holding one formatted error.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the messages of the chain with ": ".
func (e Error) Error() string {
	msg := make([]string, len(e))

	for i, err := range e {
		msg[i] = err.Error()
	}

	return strings.Join(msg, ": ")
}

// Wrap returns a new chain with errs appended to e.
func (e Error) Wrap(errs ...error) Error {
	return append(slices.Clip(e), MakeError(errs...)...)
}

// Wrapf returns a new chain with a formatted error appended to e.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the errors of the chain.
func (e Error) Unwrap() []error { return e }

// Is reports whether target is a chain that e begins with, so an error built
// by wrapping a sentinel matches that sentinel.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)

	return ok && len(t) > 0 && len(t) <= len(e) && slices.Equal(e[:len(t)], t)
}
