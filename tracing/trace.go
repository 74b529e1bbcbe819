// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tracing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/binaryshapes/mixor/internal/typeshape"
)

// Subject identifies the component a trace wrapper reports events for.
type Subject struct {
	ID  string
	Tag string
}

type traceOptions struct {
	async bool
}

// TraceOption configures the [Trace] and [TraceCall] wrappers.
type TraceOption func(*traceOptions)

// Async marks every event emitted by the wrapper as belonging to a
// callable whose completion is observed on a goroutine other than the
// caller's, for example a callable dispatched by a concurrent flow.
func Async() TraceOption {
	return func(o *traceOptions) {
		o.async = true
	}
}

// Trace wraps fn so each invocation runs under an OpenTelemetry span
// and emits lifecycle events on bus. The returned callable forwards
// arguments, results and the span context transparently, so it can be
// used anywhere fn could.
//
// A successful invocation emits start, finish and performance events
// sharing one trace id. A failed one emits start and error, and the
// error is also recorded on the span.
func Trace[I, O any](
	bus *Bus,
	sub Subject,
	fn func(context.Context, I) (O, error),
	opts ...TraceOption,
) func(context.Context, I) (O, error) {
	o := newTraceOptions(opts...)
	return func(ctx context.Context, in I) (O, error) {
		return run(ctx, bus, sub, o, typeshape.OfAll(in), func(spanCtx context.Context) (O, error) {
			return fn(spanCtx, in)
		})
	}
}

// TraceCall wraps a nullary callable, such as a provider factory. It
// behaves like [Trace] except start events carry no argument shapes.
func TraceCall[O any](
	bus *Bus,
	sub Subject,
	fn func(context.Context) (O, error),
	opts ...TraceOption,
) func(context.Context) (O, error) {
	o := newTraceOptions(opts...)
	return func(ctx context.Context) (O, error) {
		return run(ctx, bus, sub, o, nil, fn)
	}
}

func newTraceOptions(opts ...TraceOption) traceOptions {
	var o traceOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func run[O any](
	ctx context.Context,
	bus *Bus,
	sub Subject,
	o traceOptions,
	argShapes []string,
	fn func(context.Context) (O, error),
) (O, error) {
	spanCtx, span := otel.Tracer("tracing").Start(ctx, sub.ID)
	defer span.End()

	span.SetAttributes(
		attribute.String("component.id", sub.ID),
		attribute.String("component.tag", sub.Tag),
	)

	traceID := uuid.NewString()
	start := time.Now()

	bus.Emit(spanCtx, Event{
		Signal:      SignalStart,
		TraceID:     traceID,
		ComponentID: sub.ID,
		Tag:         sub.Tag,
		Time:        start,
		ArgShapes:   argShapes,
		Async:       o.async,
	})

	out, err := fn(spanCtx)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		bus.Emit(spanCtx, Event{
			Signal:      SignalError,
			TraceID:     traceID,
			ComponentID: sub.ID,
			Tag:         sub.Tag,
			Time:        time.Now(),
			Duration:    duration,
			Async:       o.async,
			Err:         err,
		})
		return out, err
	}

	span.SetStatus(codes.Ok, "")

	completed := Event{
		Signal:      SignalFinish,
		TraceID:     traceID,
		ComponentID: sub.ID,
		Tag:         sub.Tag,
		Time:        time.Now(),
		ReturnShape: typeshape.Of(out),
		Duration:    duration,
		Async:       o.async,
	}
	bus.Emit(spanCtx, completed)

	completed.Signal = SignalPerformance
	bus.Emit(spanCtx, completed)

	return out, nil
}
