// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package mixor turns plain Go values into components: cataloged
// building blocks with structural identity, human metadata and
// optional tracing and injection behavior.
//
// The package is built around three core abstractions:
//
//   - Component: an identity handle over a cataloged target
//   - Capability: the behaviors granted to a component when it is defined
//   - Define: the single entry point every component constructor funnels through
//
// # Defining Components
//
// Define registers a target in the catalog under a tag and returns its
// handle:
//
//	parse := mixor.Define("function", parseOrder,
//		mixor.Capabilities(mixor.CapabilityTraceable),
//	)
//
// Identity is structural: defining the same content twice yields two
// handles sharing one record id, each counted as a reference with its
// own meta id. Handles attach metadata and composition edges:
//
//	parse.
//		Meta(mixor.Meta{Name: "ParseOrder", Description: "Decodes wire orders."}).
//		AddChildren(validate)
//
// # Capabilities
//
// Behavior beyond cataloging is granted at definition time and never
// changes afterwards. A component defined without CapabilityTraceable
// cannot be instrumented; asking for it panics, since that is a wiring
// mistake rather than a runtime condition.
//
// # Higher Level Constructors
//
// DefineRule, DefineValue, DefineSchema and DefineStep couple the
// validation and flow primitives from the schema and flow packages
// with their catalog identity, wiring rule components in as children
// of the values built from them.
//
// # Subpackages
//
// The catalog itself lives in registry, the event bus and trace
// wrappers in tracing, dependency injection in container, validation
// in schema, composition in flow, and the shared error type in fault.
package mixor
