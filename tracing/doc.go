// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package tracing implements the invocation event bus used to observe
// component calls.
//
// A [Bus] fans out lifecycle events to registered listeners. Every traced
// invocation produces a causally ordered pair of events sharing one trace
// id: a [SignalStart] event when the call begins and, depending on the
// outcome, [SignalFinish] plus [SignalPerformance] events or a
// [SignalError] event. Events carry type shapes instead of argument
// values so listeners never observe raw data.
//
// The [Trace] and [TraceCall] helpers wrap a callable so each invocation
// emits those events and runs under an OpenTelemetry span:
//
//	validate := tracing.Trace(bus, tracing.Subject{ID: "rule:ab12", Tag: "rule"}, checkEmail)
//	ok, err := validate(ctx, "gali@mixor.dev")
//
// Listeners subscribe per signal and receive events synchronously in
// subscription order:
//
//	stop, err := bus.On(tracing.SignalError, func(e tracing.Event) {
//		log.Error("component failed", tracelog.Component(e.ComponentID), tracelog.Error(e.Err))
//	})
//
// Listener registrations persist until the returned stop function or
// [Bus.Clear] removes them. A configurable cap ([MaxListeners]) guards
// against unbounded accumulation.
//
// The subpackages stdout, otlp, gcp and noop provide span exporter and
// tracer provider constructors for wiring the OpenTelemetry side of the
// bus to a concrete destination.
package tracing
