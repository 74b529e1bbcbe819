// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"slices"

	"github.com/binaryshapes/mixor/result"
)

// Value associates rules with a single scalar, such as an email
// address or an age.
type Value[T any] struct {
	name  string
	rules []Rule[T]
}

// NewValue names a validated scalar and the rules it must satisfy.
func NewValue[T any](name string, rules ...Rule[T]) *Value[T] {
	if name == "" {
		panic("schema: empty value name")
	}
	return &Value[T]{
		name:  name,
		rules: slices.Clone(rules),
	}
}

// Name returns the value's name.
func (v *Value[T]) Name() string { return v.name }

// Rules returns the value's rules in declaration order.
func (v *Value[T]) Rules() []Rule[T] {
	return slices.Clone(v.rules)
}

// Validate checks in against every rule, accumulating issues across
// all of them. On success it returns the value with any rule
// transformations applied.
func (v *Value[T]) Validate(in T) result.Result[T] {
	return All(v.rules...).Apply(in)
}
