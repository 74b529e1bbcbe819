// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package result provides explicit containers for fallible and
// optional values.
//
// The package is built around two types:
//
//   - Result[T]: a value or an error, never both
//   - Option[T]: a value that may or may not be set
//
// Result carries expected, recoverable failures such as validation
// issues. It is deliberately not a replacement for Go's (T, error)
// returns: use it where failures are data to be inspected, merged and
// transformed, and plain error returns everywhere else. [Of] bridges
// from one world to the other.
//
// Option distinguishes "not set" from "set to the zero value", which
// matters for metadata and configuration defaults.
//
// # Composition
//
// Both types compose through package level combinators:
//
//	age := result.Bind(
//	    result.Of(strconv.Atoi(raw)),
//	    func(n int) result.Result[int] {
//	        if n < 0 {
//	            return result.Err[int](errors.New("age must not be negative"))
//	        }
//	        return result.Ok(n)
//	    },
//	)
//
// Try multiple optional values in order:
//
//	lang := result.Or(
//	    fromRequest,
//	    fromProfile,
//	    result.Some("en"),
//	)
package result
