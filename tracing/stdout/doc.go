// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package stdout provides OpenTelemetry span exporter and tracer
// provider constructors that write trace data to an io.Writer in a
// human readable format.
//
// Spans are exported synchronously as they end, so the package is
// meant for local development, debugging and tests rather than
// production use.
package stdout
