// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mixor

import (
	"context"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/flow"
	"github.com/binaryshapes/mixor/registry"
	"github.com/binaryshapes/mixor/result"
	"github.com/binaryshapes/mixor/tracing"
)

// StepComponent couples a flow step with its catalog identity.
type StepComponent[I, O any] struct {
	*Component

	step flow.Step[I, O]
}

// DefineStep registers a named flow step and returns the coupled
// handle. Identity derives from the step func and the name, so the
// same declaration defined under the same name counts a reference.
//
// Steps are traceable: [StepComponent.Traced] returns the step wrapped
// to emit lifecycle events, ready to compose with the flow package.
func DefineStep[I, O any](name string, step flow.Step[I, O], opts ...DefineOption) *StepComponent[I, O] {
	if step == nil {
		panic(fault.Newf("mixor", "invalid_definition", "nil step for %q", name))
	}

	opts = append(opts, Capabilities(CapabilityTraceable), Extras(name))
	c := Define("step", step, opts...)
	must(c.reg.Annotate(c.metaID, registry.MetaPatch{Name: result.Some(name)}))

	return &StepComponent[I, O]{Component: c, step: step}
}

// Step returns the underlying step unchanged.
func (s *StepComponent[I, O]) Step() flow.Step[I, O] { return s.step }

// Run executes the underlying step without instrumentation.
func (s *StepComponent[I, O]) Run(ctx context.Context, in I) (O, error) {
	return s.step(ctx, in)
}

// Traced returns the step wrapped to emit lifecycle events for this
// component on its bus.
func (s *StepComponent[I, O]) Traced(opts ...tracing.TraceOption) flow.Step[I, O] {
	return flow.Step[I, O](Traced[I, O](s.Component, s.step, opts...))
}
