// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tracelog

import (
	"log/slog"
	"time"
)

// Component returns an slog.Attr for a component id.
func Component(id string) slog.Attr {
	return slog.String("component_id", id)
}

// MetaID returns an slog.Attr for a component meta id.
func MetaID(id string) slog.Attr {
	return slog.String("meta_id", id)
}

// Tag returns an slog.Attr for a component tag.
func Tag(tag string) slog.Attr {
	return slog.String("tag", tag)
}

// Event returns an slog.Attr for a tracer event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// TraceID returns an slog.Attr for a tracer call id.
func TraceID(id string) slog.Attr {
	return slog.String("trace_id", id)
}

// Duration returns an slog.Attr for an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Error returns an slog.Attr for an error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
