// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/binaryshapes/mixor"
	"github.com/binaryshapes/mixor/tracing"
	"github.com/binaryshapes/mixor/tracing/gcp"
	"github.com/binaryshapes/mixor/tracing/otlp"
	"github.com/binaryshapes/mixor/tracing/stdout"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// newProvider picks a span exporter from the environment: an OTLP
// collector when OTLP_TARGET is set, Cloud Trace when
// GOOGLE_CLOUD_PROJECT is set, and stdout otherwise.
func newProvider(ctx context.Context) (*sdktrace.TracerProvider, error) {
	if target := os.Getenv("OTLP_TARGET"); target != "" {
		conn, err := grpc.DialContext(
			ctx,
			target,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, err
		}
		return otlp.NewProvider(ctx, conn)
	}

	if project := os.Getenv("GOOGLE_CLOUD_PROJECT"); project != "" {
		return gcp.NewProvider(ctx, project)
	}

	return stdout.NewProvider(os.Stdout)
}

func main() {
	ctx := context.Background()

	tp, err := newProvider(ctx)
	if err != nil {
		slog.Error("failed to build tracer provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdown := tracing.SetProvider(tp)
	defer shutdown(context.Background())

	shout := mixor.Define("shout", strings.ToUpper, mixor.Capabilities(mixor.CapabilityTraceable))

	traced := mixor.Traced[string, string](shout, func(_ context.Context, s string) (string, error) {
		return strings.ToUpper(s), nil
	})

	out, err := traced(ctx, "hello from mixor")
	if err != nil {
		slog.Error("traced call failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(out)
}
