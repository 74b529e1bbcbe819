// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package fault defines the error type shared by all mixor packages.
//
// A [Fault] carries a scope and a code which together identify a
// failure condition, for example "registry.not_found". Packages export
// their conditions as sentinel faults so callers can match them with
// [errors.Is] without inspecting message text.
package fault

import (
	"errors"
	"fmt"
	"io"
)

// Fault is an error identified by a scope and a code.
//
// Two faults match under [errors.Is] when their scopes and codes are
// equal. Detail and Cause carry per occurrence context and are ignored
// when matching.
type Fault struct {
	// Scope names the subsystem which raised the fault, e.g. "registry".
	Scope string

	// Code identifies the failure condition within the scope, e.g. "not_found".
	Code string

	// Detail is optional human readable context.
	Detail string

	// Cause is the underlying error, if any.
	Cause error
}

// New returns a fault with the given scope, code and detail.
func New(scope, code, detail string) *Fault {
	return trace(&Fault{
		Scope:  scope,
		Code:   code,
		Detail: detail,
	})
}

// Newf returns a fault with its detail built from a format string.
func Newf(scope, code, format string, args ...any) *Fault {
	return trace(&Fault{
		Scope:  scope,
		Code:   code,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Wrap returns a fault wrapping cause. The cause is reachable via
// [errors.Unwrap] and is appended to the rendered message.
func Wrap(scope, code, detail string, cause error) *Fault {
	return trace(&Fault{
		Scope:  scope,
		Code:   code,
		Detail: detail,
		Cause:  cause,
	})
}

// Error returns the fault rendered as "scope.code: detail: cause",
// omitting the detail and cause when unset.
func (f *Fault) Error() string {
	s := f.Scope + "." + f.Code
	if f.Detail != "" {
		s += ": " + f.Detail
	}
	if f.Cause != nil {
		s += ": " + f.Cause.Error()
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Is reports whether target is a [Fault] with the same scope and code.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}
	return f.Scope == t.Scope && f.Code == t.Code
}

// Must returns v if err is nil and panics with err otherwise. It is
// meant for call sites where a failure leaves the caller no way to
// continue, such as corrupted registry state.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// PanicError represents a recovered panic value.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e PanicError) Error() string {
	return fmt.Sprintf("recovered from panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error, and nil otherwise.
func (e PanicError) Unwrap() error {
	err, ok := e.Value.(error)
	if !ok {
		return nil
	}
	return err
}

// Recover recovers an active panic and merges it into err. It must be
// deferred with a pointer to the caller's named error return:
//
//	func do() (err error) {
//		defer fault.Recover(&err)
//		// ...
//	}
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}

	perr := PanicError{
		Value: r,
	}
	if *err == nil {
		*err = perr
		return
	}
	*err = errors.Join(*err, perr)
}

// CloseError wraps a failure to close an underlying resource.
type CloseError struct {
	Cause error
}

// Error implements the error interface.
func (e CloseError) Error() string {
	return fmt.Sprintf("failed to close: %s", e.Cause)
}

// Unwrap returns the underlying close failure.
func (e CloseError) Unwrap() error {
	return e.Cause
}

// Close closes v when it implements io.Closer and merges any failure
// into err, wrapped as a [CloseError]. It is meant to be deferred:
//
//	func read(r io.Reader) (err error) {
//		defer fault.Close(&err, r)
//		// ...
//	}
func Close(err *error, v any) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}

	cerr := c.Close()
	if cerr == nil {
		return
	}

	werr := CloseError{Cause: cerr}
	if *err == nil {
		*err = werr
		return
	}
	*err = errors.Join(*err, werr)
}
