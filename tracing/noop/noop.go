// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package noop

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type SpanExporter struct{}

func (e SpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	return nil
}

func (e SpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// NewProvider returns a tracer provider which records spans and
// discards them on export.
func NewProvider() *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(SpanExporter{}),
	)
}
