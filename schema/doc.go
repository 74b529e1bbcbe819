// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schema validates values against named rules.
//
// A [Rule] is a named check over one type. Rules compose with [All],
// [Any] and [Not], attach to scalars through [Value] and to struct
// fields through [Schema]:
//
//	email := schema.NewValue("email",
//		schema.NonEmpty(),
//		schema.Matches("email", `^[^@\s]+@[^@\s]+$`),
//	)
//
//	user := schema.NewSchema("user",
//		schema.Field("email", func(u User) string { return u.Email }, email.Rules()...),
//		schema.Field("age", func(u User) int { return u.Age }, schema.Min(18)),
//	)
//
//	if _, err := user.Validate(in).Get(); err != nil {
//		// err is an Issues value listing every failing field
//	}
//
// Validation failures are expected errors: they are returned as
// [Issues] inside a result, never panicked, and they accumulate. A
// schema reports every failing field in one pass, each issue pathed by
// a JSON pointer such as "/address/city".
package schema
