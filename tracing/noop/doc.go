// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package noop provides a no-operation span exporter and tracer
// provider. Spans are recorded and dropped, so traced callables keep
// valid span contexts for log correlation while no telemetry leaves
// the process.
package noop
