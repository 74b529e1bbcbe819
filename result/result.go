// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package result

// Result holds either a value of type T or an error.
//
// The zero value is an Ok result holding T's zero value. A result is
// Ok exactly when its error is nil, so [Of] can wrap any (T, error)
// return without reinterpreting it.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err returns a result holding err. A nil err yields an Ok result
// holding the zero value.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Of wraps a (T, error) return into a result.
func Of[T any](v T, err error) Result[T] {
	return Result[T]{value: v, err: err}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether the result holds an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Get returns the held value and error.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// GetOr returns the held value, or fallback if the result is an error.
func (r Result[T]) GetOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// MustGet returns the held value and panics if the result is an error.
func (r Result[T]) MustGet() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}

// Option drops the error, returning Some for an Ok result and None
// otherwise.
func (r Result[T]) Option() Option[T] {
	if r.err != nil {
		return None[T]()
	}
	return Some(r.value)
}

// Map transforms an Ok result's value with fn. Errors pass through
// untouched.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// Bind chains r into fn, allowing fn to fail. Errors pass through
// untouched.
func Bind[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// Match folds the result into a single value by applying onOk or
// onErr.
func Match[T, U any](r Result[T], onOk func(T) U, onErr func(error) U) U {
	if r.err != nil {
		return onErr(r.err)
	}
	return onOk(r.value)
}
