// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gcp exports trace data directly to Google Cloud Trace.
//
// The provider built here plugs into [tracing.SetProvider] like any
// other, so components traced through a [tracing.Bus] show up in Cloud
// Trace without further wiring.
package gcp

import (
	"context"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	gcpdetector "go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/api/option"
)

// NewSpanExporter returns a span exporter which sends trace data to
// Cloud Trace in the given project. An empty project id is resolved
// from the environment the process runs in.
func NewSpanExporter(projectID string) (*texporter.Exporter, error) {
	return texporter.New(
		texporter.WithProjectID(projectID),
		texporter.WithTraceClientOptions([]option.ClientOption{option.WithTelemetryDisabled()}),
	)
}

// NewResource describes the running process for Cloud Trace, detecting
// the GCP runtime it executes on.
func NewResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithDetectors(gcpdetector.NewDetector()),
		resource.WithTelemetrySDK(),
	)
}

// NewProvider returns a tracer provider batching spans towards Cloud
// Trace, with the process described by [NewResource].
func NewProvider(ctx context.Context, projectID string, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	exporter, err := NewSpanExporter(projectID)
	if err != nil {
		return nil, err
	}

	res, err := NewResource(ctx)
	if err != nil {
		return nil, err
	}

	opts = append(opts, sdktrace.WithBatcher(exporter), sdktrace.WithResource(res))
	return sdktrace.NewTracerProvider(opts...), nil
}
