// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type shutdownInterface interface {
	Shutdown(ctx context.Context) error
}

// SetProvider installs tp as the global OpenTelemetry tracer provider
// used by the trace wrappers. It returns a shutdown function which
// flushes pending spans; the function is a no-op when tp does not
// implement Shutdown.
func SetProvider(tp trace.TracerProvider) func(context.Context) error {
	otel.SetTracerProvider(tp)

	if sd, ok := tp.(shutdownInterface); ok {
		return sd.Shutdown
	}
	return func(_ context.Context) error {
		return nil
	}
}
