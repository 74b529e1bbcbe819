// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tracing

import (
	"time"
)

// Signal identifies the lifecycle moment an [Event] describes.
type Signal string

const (
	// SignalStart is emitted when a traced invocation begins.
	SignalStart Signal = "start"

	// SignalFinish is emitted when a traced invocation returns
	// without an error.
	SignalFinish Signal = "finish"

	// SignalPerformance mirrors SignalFinish with the same payload.
	// It exists so latency focused listeners can subscribe without
	// also observing the lifecycle stream.
	SignalPerformance Signal = "performance"

	// SignalError is emitted when a traced invocation returns an
	// error.
	SignalError Signal = "error"
)

// Event is the payload delivered to bus listeners for a single
// lifecycle moment of a traced invocation.
//
// Events never carry raw argument or return values. ArgShapes and
// ReturnShape hold type names only, so listeners can be attached in
// production without exposing sensitive data.
type Event struct {
	// Signal is the lifecycle moment this event describes.
	Signal Signal

	// TraceID is a fresh id minted per invocation. The start and
	// completion events of one invocation share it.
	TraceID string

	// ComponentID and Tag identify the traced component.
	ComponentID string
	Tag         string

	// Time is when the event was produced. Durations derive from the
	// monotonic clock reading it carries.
	Time time.Time

	// ArgShapes holds the type shapes of the invocation input. Only
	// set on start events.
	ArgShapes []string

	// ReturnShape holds the type shape of the invocation output. Only
	// set on finish and performance events.
	ReturnShape string

	// Duration is how long the invocation ran. Zero on start events.
	Duration time.Duration

	// Async reports whether the callable was declared as completing
	// on a goroutine other than the caller's.
	Async bool

	// Err is the invocation error. Only set on error events.
	Err error
}
