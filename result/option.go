// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package result

// Option holds a value of type T that may or may not be set.
//
// The zero value is None.
type Option[T any] struct {
	value T
	set   bool
}

// Some returns an option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, set: true}
}

// None returns an unset option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.set
}

// IsNone reports whether the option is unset.
func (o Option[T]) IsNone() bool {
	return !o.set
}

// Get returns the held value and whether it is set.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.set
}

// GetOr returns the held value, or fallback if the option is unset.
func (o Option[T]) GetOr(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

// OkOr converts the option into a result, substituting err when the
// option is unset.
func (o Option[T]) OkOr(err error) Result[T] {
	if !o.set {
		return Err[T](err)
	}
	return Ok(o.value)
}

// Or returns the first set option, or None if all are unset.
func Or[T any](opts ...Option[T]) Option[T] {
	for _, o := range opts {
		if o.set {
			return o
		}
	}
	return None[T]()
}

// MapOption transforms a set option's value with fn. None passes
// through untouched.
func MapOption[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.set {
		return None[U]()
	}
	return Some(fn(o.value))
}

// BindOption chains o into fn, allowing fn to return None.
func BindOption[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if !o.set {
		return None[U]()
	}
	return fn(o.value)
}
