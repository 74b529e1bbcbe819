// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
)

// NonEmpty rejects the empty string.
func NonEmpty() Rule[string] {
	return Ensure("non_empty", "must not be empty", func(s string) bool {
		return s != ""
	})
}

// MinLen rejects strings shorter than n bytes.
func MinLen(n int) Rule[string] {
	return Ensure("min_len", fmt.Sprintf("must be at least %d characters", n), func(s string) bool {
		return len(s) >= n
	})
}

// MaxLen rejects strings longer than n bytes.
func MaxLen(n int) Rule[string] {
	return Ensure("max_len", fmt.Sprintf("must be at most %d characters", n), func(s string) bool {
		return len(s) <= n
	})
}

// Matches rejects strings not matching pattern. The pattern must
// compile; a name identifies which format failed, e.g. "email".
func Matches(name, pattern string) Rule[string] {
	re := regexp.MustCompile(pattern)
	return Ensure(name, fmt.Sprintf("must match %s", pattern), func(s string) bool {
		return re.MatchString(s)
	})
}

// OneOf rejects values outside the allowed set.
func OneOf[T comparable](allowed ...T) Rule[T] {
	return Ensure("one_of", fmt.Sprintf("must be one of %v", allowed), func(v T) bool {
		return slices.Contains(allowed, v)
	})
}

// Min rejects values below bound.
func Min[T cmp.Ordered](bound T) Rule[T] {
	return Ensure("min", fmt.Sprintf("must be at least %v", bound), func(v T) bool {
		return v >= bound
	})
}

// Max rejects values above bound.
func Max[T cmp.Ordered](bound T) Rule[T] {
	return Ensure("max", fmt.Sprintf("must be at most %v", bound), func(v T) bool {
		return v <= bound
	})
}
