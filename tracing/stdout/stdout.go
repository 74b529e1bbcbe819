// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package stdout

import (
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewSpanExporter returns a span exporter which writes trace data to w
// in a human readable format.
func NewSpanExporter(w io.Writer) (*stdouttrace.Exporter, error) {
	return stdouttrace.New(
		stdouttrace.WithWriter(w),
	)
}

// NewProvider returns a tracer provider exporting every span to w as
// soon as it ends, without batching.
func NewProvider(w io.Writer, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	exporter, err := NewSpanExporter(w)
	if err != nil {
		return nil, err
	}

	opts = append(opts, sdktrace.WithSyncer(exporter))
	return sdktrace.NewTracerProvider(opts...), nil
}
