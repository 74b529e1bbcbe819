// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otlp

import (
	"context"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
)

// NewSpanExporter returns an OTLP span exporter which sends trace data
// to an OTLP compatible collector over the provided gRPC connection.
func NewSpanExporter(ctx context.Context, conn *grpc.ClientConn) (*otlptrace.Exporter, error) {
	return otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithGRPCConn(conn),
	)
}

// NewProvider returns a tracer provider batching spans towards the
// collector reachable over conn.
func NewProvider(ctx context.Context, conn *grpc.ClientConn, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	exporter, err := NewSpanExporter(ctx, conn)
	if err != nil {
		return nil, err
	}

	opts = append(opts, sdktrace.WithBatcher(exporter))
	return sdktrace.NewTracerProvider(opts...), nil
}
