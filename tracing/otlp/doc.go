// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otlp provides OpenTelemetry Protocol (OTLP) span exporter
// and tracer provider constructors. Trace data is sent to an OTLP
// compatible collector over a caller supplied gRPC connection, with
// spans batched before export.
package otlp
