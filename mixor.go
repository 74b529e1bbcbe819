// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mixor

import (
	"context"
	"reflect"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/registry"
	"github.com/binaryshapes/mixor/result"
	"github.com/binaryshapes/mixor/tracing"
)

type defineOptions struct {
	reg     *registry.Registry
	bus     *tracing.Bus
	caps    Capability
	subType string
	extras  []any
}

// DefineOption configures [Define] and [Of].
type DefineOption func(*defineOptions)

// Registry overrides the catalog the component registers in. Without
// it components share [registry.Default].
func Registry(r *registry.Registry) DefineOption {
	return func(o *defineOptions) {
		if r != nil {
			o.reg = r
		}
	}
}

// Bus overrides the event bus [Traced] wrappers emit on. Without it
// components share [tracing.Default].
func Bus(b *tracing.Bus) DefineOption {
	return func(o *defineOptions) {
		if b != nil {
			o.bus = b
		}
	}
}

// Capabilities grants caps on top of [CapabilityTagged], which every
// component holds.
func Capabilities(caps Capability) DefineOption {
	return func(o *defineOptions) {
		o.caps |= caps
	}
}

// SubType refines the component's tag, e.g. "async".
func SubType(s string) DefineOption {
	return func(o *defineOptions) {
		o.subType = s
	}
}

// Extras mixes additional content into the identity digest, for
// targets whose content alone is not unique enough.
func Extras(extras ...any) DefineOption {
	return func(o *defineOptions) {
		o.extras = append(o.extras, extras...)
	}
}

func newDefineOptions(opts ...DefineOption) defineOptions {
	o := defineOptions{
		reg:  registry.Default(),
		bus:  tracing.Default(),
		caps: CapabilityTagged,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Define registers target in the catalog under tag and returns its
// component handle.
//
// Identity is structural: two components defined over the same content
// share a record id while each holds its own meta id, and the record's
// RefCount reports how many handles were minted. Defining the same
// target again is therefore how a further reference is counted, not an
// error.
//
// Define panics with [ErrInvalidDefinition] on an empty tag or a nil
// target, since both can only come from broken wiring code.
func Define(tag string, target any, opts ...DefineOption) *Component {
	if tag == "" {
		panic(fault.New("mixor", "invalid_definition", "empty component tag"))
	}
	if target == nil {
		panic(fault.Newf("mixor", "invalid_definition", "nil target for tag %q", tag))
	}

	o := newDefineOptions(opts...)

	c := &Component{
		reg:  o.reg,
		bus:  o.bus,
		tag:  tag,
		caps: o.caps,
	}

	// The handle itself is the registered reference. Its content is
	// opaque to the fingerprint, so the digest is driven entirely by
	// the target and extras, and a fresh handle per Define call keeps
	// structural twins counted instead of rejected.
	c.key = c

	rec := fault.Must(o.reg.Add(c, tag, append([]any{target}, o.extras...)...))
	c.id = rec.ID
	c.metaID = rec.MetaID

	patch := registry.Patch{Category: result.Some(categoryOf(target))}
	if o.subType != "" {
		patch.SubType = result.Some(o.subType)
	}
	must(o.reg.Set(c, patch))

	return c
}

// Of recovers a component handle for a target that is already
// cataloged, such as a port bound through a container. It fails with
// [registry.ErrNotFound] when the reference was never added.
//
// Capabilities are rebuilt from the record's flags; further ones can
// be granted through [Capabilities].
func Of(target any, opts ...DefineOption) (*Component, error) {
	o := newDefineOptions(opts...)

	rec, err := o.reg.Get(target)
	if err != nil {
		return nil, err
	}

	caps := o.caps
	if rec.Traceable {
		caps |= CapabilityTraceable
	}
	if rec.Injectable {
		caps |= CapabilityInjectable
	}

	return &Component{
		reg:    o.reg,
		bus:    o.bus,
		key:    target,
		id:     rec.ID,
		metaID: rec.MetaID,
		tag:    rec.Tag,
		caps:   caps,
	}, nil
}

// Traced wraps fn so each invocation emits lifecycle events for c on
// its bus. It requires [CapabilityTraceable] and marks the catalog
// record as traceable.
func Traced[I, O any](
	c *Component,
	fn func(context.Context, I) (O, error),
	opts ...tracing.TraceOption,
) func(context.Context, I) (O, error) {
	c.markTraceable()
	return tracing.Trace(c.bus, tracing.Subject{ID: c.id, Tag: c.tag}, fn, opts...)
}

// TracedCall is [Traced] for nullary callables, such as factories.
func TracedCall[O any](
	c *Component,
	fn func(context.Context) (O, error),
	opts ...tracing.TraceOption,
) func(context.Context) (O, error) {
	c.markTraceable()
	return tracing.TraceCall(c.bus, tracing.Subject{ID: c.id, Tag: c.tag}, fn, opts...)
}

func categoryOf(target any) registry.Category {
	if reflect.TypeOf(target).Kind() == reflect.Func {
		return registry.CategoryFunction
	}
	return registry.CategoryObject
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
