// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mixor

import (
	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/registry"
	"github.com/binaryshapes/mixor/result"
	"github.com/binaryshapes/mixor/schema"
)

// RuleComponent couples a validation rule with its catalog identity.
type RuleComponent[T any] struct {
	*Component

	rule schema.Rule[T]
}

// DefineRule registers r as a "rule" component and returns the coupled
// handle. Identity derives from the check's shape plus the rule's name
// and message, so defining the same declaration again counts a
// reference instead of minting a new id, while rules that differ only
// in their parameters stay distinct. The rule's name seeds the
// registration's meta record.
func DefineRule[T any](r schema.Rule[T], opts ...DefineOption) *RuleComponent[T] {
	opts = append(opts, Capabilities(CapabilityTraceable), Extras(r.Name(), r.Message()))
	c := Define("rule", r.Check(), opts...)
	must(c.reg.Annotate(c.metaID, registry.MetaPatch{Name: result.Some(r.Name())}))

	return &RuleComponent[T]{Component: c, rule: r}
}

// Rule returns the underlying rule.
func (r *RuleComponent[T]) Rule() schema.Rule[T] { return r.rule }

// Apply runs the underlying rule.
func (r *RuleComponent[T]) Apply(v T) result.Result[T] {
	return r.rule.Apply(v)
}

// ValueComponent couples a scalar validator with its catalog identity.
type ValueComponent[T any] struct {
	*Component

	value *schema.Value[T]
}

// DefineValue registers a named scalar validator built from rule
// components and returns the coupled handle. The rules become the
// component's children, so [Component.Tree] on a value descends into
// them. Identity derives from the value name and the rule ids.
//
// The value registers in the catalog its rules live in, keeping the
// child links resolvable. Mixing rules from different registries
// panics with [ErrInvalidDefinition].
func DefineValue[T any](name string, rules ...*RuleComponent[T]) *ValueComponent[T] {
	rs := make([]schema.Rule[T], len(rules))
	children := make([]*Component, len(rules))
	extras := make([]any, 0, len(rules)+1)
	extras = append(extras, name)
	for i, rc := range rules {
		rs[i] = rc.rule
		children[i] = rc.Component
		extras = append(extras, rc.id)
	}

	opts := []DefineOption{Capabilities(CapabilityTraceable), Extras(extras...)}
	if len(rules) > 0 {
		opts = append(opts, Registry(rules[0].reg), Bus(rules[0].bus))
		for _, rc := range rules[1:] {
			if rc.reg != rules[0].reg {
				panic(fault.Newf("mixor", "invalid_definition",
					"value %q mixes rules from different registries", name))
			}
		}
	}

	v := schema.NewValue(name, rs...)
	c := Define("value", v, opts...)
	c.AddChildren(children...)
	must(c.reg.Annotate(c.metaID, registry.MetaPatch{Name: result.Some(name)}))

	return &ValueComponent[T]{Component: c, value: v}
}

// Value returns the underlying validator.
func (v *ValueComponent[T]) Value() *schema.Value[T] { return v.value }

// Validate checks in against every rule of the value.
func (v *ValueComponent[T]) Validate(in T) result.Result[T] {
	return v.value.Validate(in)
}

// SchemaComponent couples a struct validator with its catalog
// identity.
type SchemaComponent[S any] struct {
	*Component

	s *schema.Schema[S]
}

// DefineSchema registers s as a "schema" component and returns the
// coupled handle. Identity derives from the schema name and its
// [schema.Schema.Signature], so renaming a field or rebinding its
// rules mints a new id. Field rules are accessors rather than
// components, so composition edges to the values a schema was
// assembled from are linked by the caller through
// [Component.AddChildren].
func DefineSchema[S any](s *schema.Schema[S], opts ...DefineOption) *SchemaComponent[S] {
	sig := s.Signature()
	extras := make([]any, 0, len(sig)+1)
	extras = append(extras, s.Name())
	for _, f := range sig {
		extras = append(extras, f)
	}

	opts = append(opts, Capabilities(CapabilityTraceable), Extras(extras...))
	c := Define("schema", s, opts...)
	must(c.reg.Annotate(c.metaID, registry.MetaPatch{Name: result.Some(s.Name())}))

	return &SchemaComponent[S]{Component: c, s: s}
}

// Schema returns the underlying validator.
func (sc *SchemaComponent[S]) Schema() *schema.Schema[S] { return sc.s }

// Validate checks every field of in, accumulating issues across all of
// them.
func (sc *SchemaComponent[S]) Validate(in S) result.Result[S] {
	return sc.s.Validate(in)
}
