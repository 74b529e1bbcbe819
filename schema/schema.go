// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"slices"
	"strings"

	"github.com/binaryshapes/mixor/result"
)

// FieldRule checks one field of S. Build them with [Field] and
// [Nested].
type FieldRule[S any] struct {
	name  string
	rules string
	check func(S) Issues
}

// Name returns the field name the rule is bound to.
func (f FieldRule[S]) Name() string { return f.name }

// Field binds rules to one field of S through an accessor. Issues
// raised by the rules are pathed under the field name.
func Field[S, F any](name string, get func(S) F, rules ...Rule[F]) FieldRule[S] {
	if name == "" {
		panic("schema: empty field name")
	}
	if get == nil {
		panic("schema: nil field accessor")
	}

	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.Name()
		if m := r.Message(); m != "" {
			parts[i] += ":" + m
		}
	}

	all := All(rules...)
	return FieldRule[S]{
		name:  name,
		rules: strings.Join(parts, ","),
		check: func(s S) Issues {
			if _, err := all.Apply(get(s)).Get(); err != nil {
				return at("/"+name, AsIssues(err))
			}
			return nil
		},
	}
}

// Nested embeds another schema under a field, extending issue paths
// with the field name.
func Nested[S, N any](name string, get func(S) N, nested *Schema[N]) FieldRule[S] {
	if name == "" {
		panic("schema: empty field name")
	}
	if get == nil {
		panic("schema: nil field accessor")
	}
	if nested == nil {
		panic("schema: nil nested schema")
	}

	return FieldRule[S]{
		name:  name,
		rules: strings.Join(append([]string{nested.name}, nested.Signature()...), ","),
		check: func(s S) Issues {
			if _, err := nested.Validate(get(s)).Get(); err != nil {
				return at("/"+name, AsIssues(err))
			}
			return nil
		},
	}
}

// Schema validates a struct field by field.
//
// Validation is read only: accessors pull fields out, rules check
// them, and the input is returned unchanged on success. Scalar
// transformation belongs to [Value].
type Schema[S any] struct {
	name   string
	fields []FieldRule[S]
}

// NewSchema names a struct validator and its field rules. Fields are
// checked in declaration order.
func NewSchema[S any](name string, fields ...FieldRule[S]) *Schema[S] {
	if name == "" {
		panic("schema: empty schema name")
	}
	return &Schema[S]{
		name:   name,
		fields: slices.Clone(fields),
	}
}

// Name returns the schema's name.
func (s *Schema[S]) Name() string { return s.name }

// Fields returns the bound field names in declaration order.
func (s *Schema[S]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Signature summarizes the schema's structure: one entry per field in
// declaration order, pairing the field name with the checks bound to
// it. Structurally equal declarations share a signature, which makes
// it a stable identity key.
func (s *Schema[S]) Signature() []string {
	entries := make([]string, len(s.fields))
	for i, f := range s.fields {
		entries[i] = f.name + "=" + f.rules
	}
	return entries
}

// Validate checks every field, accumulating issues across all of them
// into one error.
func (s *Schema[S]) Validate(in S) result.Result[S] {
	var issues Issues
	for _, f := range s.fields {
		issues = append(issues, f.check(in)...)
	}

	if len(issues) > 0 {
		return result.Err[S](issues)
	}
	return result.Ok(in)
}
