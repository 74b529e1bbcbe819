// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mixor

import (
	"slices"
	"strings"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/registry"
	"github.com/binaryshapes/mixor/result"
	"github.com/binaryshapes/mixor/tracing"
)

// Capability is a bitmask of behaviors granted to a component when it
// is defined. Capabilities are fixed at definition time.
type Capability uint8

const (
	// CapabilityTagged marks the component as cataloged under a tag.
	// Every component holds it.
	CapabilityTagged Capability = 1 << iota

	// CapabilityTraceable allows instrumentation through [Traced],
	// [TracedCall] and [Component.Traceable].
	CapabilityTraceable

	// CapabilityInjectable allows the component to be marked as
	// resolvable through a container.
	CapabilityInjectable
)

// Has reports whether every capability in want is granted.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// String renders the granted capabilities as "a|b|c".
func (c Capability) String() string {
	var parts []string
	if c.Has(CapabilityTagged) {
		parts = append(parts, "tagged")
	}
	if c.Has(CapabilityTraceable) {
		parts = append(parts, "traceable")
	}
	if c.Has(CapabilityInjectable) {
		parts = append(parts, "injectable")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Faults raised by broken wiring code. They surface through panics:
// both a malformed definition and a method requiring a capability that
// was never granted are programming mistakes, not runtime conditions.
var (
	ErrInvalidDefinition = fault.New("mixor", "invalid_definition", "")
	ErrNotTraceable      = fault.New("mixor", "not_traceable", "")
	ErrNotInjectable     = fault.New("mixor", "not_injectable", "")
)

// Meta is the human metadata attached to one registration of a
// component. Empty fields are left untouched when applied, so partial
// updates compose.
type Meta struct {
	Name        string
	Description string
	Example     string
}

// Component is an identity handle over a cataloged target.
//
// A component never owns the behavior of its target; it carries the
// target's catalog identity and lets callers attach metadata,
// composition edges and instrumentation to it. Handles are created by
// [Define] and its derivatives, or recovered from an existing
// registration with [Of].
//
// Methods which mutate the catalog return the receiver so wiring code
// can chain them.
type Component struct {
	reg    *registry.Registry
	bus    *tracing.Bus
	key    any
	id     string
	metaID string
	tag    string
	caps   Capability
}

// ID returns the structural identity of the component, shared by every
// registration of the same content.
func (c *Component) ID() string { return c.id }

// MetaID returns the identity of this registration.
func (c *Component) MetaID() string { return c.metaID }

// Tag returns the kind of component, e.g. "value" or "rule".
func (c *Component) Tag() string { return c.tag }

// Capabilities returns the capabilities granted at definition time.
func (c *Component) Capabilities() Capability { return c.caps }

// Category reports whether the cataloged target is callable.
func (c *Component) Category() registry.Category {
	return c.Info().Category
}

// Info returns a snapshot of the component's catalog record. The
// handle holds a live registration, so a missing record means the
// catalog was corrupted and Info panics.
func (c *Component) Info() registry.Record {
	return fault.Must(c.reg.Get(c.key))
}

// Describe returns the meta record of this registration.
func (c *Component) Describe() registry.MetaRecord {
	return fault.Must(c.reg.Describe(c.metaID))
}

// Tree derives the dependency tree rooted at this component.
func (c *Component) Tree() (*registry.TreeNode, error) {
	return c.reg.Tree(c.id)
}

// Meta merges m into this registration's meta record. Structural twins
// keep their own metadata: annotating one registration never touches
// another.
func (c *Component) Meta(m Meta) *Component {
	var patch registry.MetaPatch
	if m.Name != "" {
		patch.Name = result.Some(m.Name)
	}
	if m.Description != "" {
		patch.Description = result.Some(m.Description)
	}
	if m.Example != "" {
		patch.Example = result.Some(m.Example)
	}
	must(c.reg.Annotate(c.metaID, patch))
	return c
}

// AddChildren links children as parts of this component's composition,
// preserving order and skipping ids that are already linked. The edge
// lives on the shared record, so structural twins see the same
// children.
func (c *Component) AddChildren(children ...*Component) *Component {
	rec := c.Info()
	ids := rec.ChildrenIDs
	for _, child := range children {
		if !slices.Contains(ids, child.id) {
			ids = append(ids, child.id)
		}
	}
	must(c.reg.Set(c.key, registry.Patch{ChildrenIDs: result.Some(ids)}))
	return c
}

// AddRefs links components this one consults without composing them.
// Refs participate in [Component.Tree] the same way children do.
func (c *Component) AddRefs(refs ...*Component) *Component {
	rec := c.Info()
	ids := rec.Refs
	for _, ref := range refs {
		if !slices.Contains(ids, ref.id) {
			ids = append(ids, ref.id)
		}
	}
	must(c.reg.Set(c.key, registry.Patch{Refs: result.Some(ids)}))
	return c
}

// Traceable marks the component for tracer instrumentation and, when
// bus is not nil, pins the bus [Traced] wrappers emit on. It panics
// with [ErrNotTraceable] if the capability was never granted.
func (c *Component) Traceable(bus *tracing.Bus) *Component {
	c.markTraceable()
	if bus != nil {
		c.bus = bus
	}
	return c
}

func (c *Component) markTraceable() {
	if !c.caps.Has(CapabilityTraceable) {
		panic(fault.Newf("mixor", "not_traceable",
			"component %q was not granted the traceable capability", c.id))
	}
	must(c.reg.Set(c.key, registry.Patch{Traceable: result.Some(true)}))
}

// Injectable marks the component as resolvable through a container. It
// panics with [ErrNotInjectable] if the capability was never granted.
func (c *Component) Injectable() *Component {
	if !c.caps.Has(CapabilityInjectable) {
		panic(fault.Newf("mixor", "not_injectable",
			"component %q was not granted the injectable capability", c.id))
	}
	must(c.reg.Set(c.key, registry.Patch{Injectable: result.Some(true)}))
	return c
}
