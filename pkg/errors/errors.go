// Package errors augments the standard errors
// provided by fmt (https://golang.org/src/fmt/errors.go)
// with a Wrap() method to wrap errors without resorting
// to fmt.Errorf("%w", err).
package errors

import (
	stderr "errors"
	"fmt"

	"go.uber.org/zap"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// Sentinels are declared once per package and never mutated: Wrap and
// Wrapf return a copy carrying the cause, so the sentinel stays comparable
// with errors.Is.
type Error struct {
	msg    string
	err    error
	parent *Error
}

// Error message
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, parent: e.root()}
}

// Wrapf wraps a formatted message as the nested error
func (e *Error) Wrapf(format string, args ...interface{}) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// WrapWithLog wraps a nested error and logs the result as an error
func (e *Error) WrapWithLog(l *zap.Logger, err error, fields ...zap.Field) *Error {
	wrapped := e.Wrap(err)
	if l != nil {
		l.Error(e.msg, append(fields, zap.Error(err))...)
	}
	return wrapped
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.parent != nil {
		return e.parent
	}
	return e
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.As)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
