// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package registry implements the component catalog underpinning mixor.
//
// A [Registry] maps reference targets, funcs and pointer-like values
// the application wants to track, to metadata records. Identity is
// structural: a record id is derived as "tag:digest" from the target's
// content fingerprint, so two structurally identical targets share a
// record. Each registration of the same content increments the
// record's reference counter and mints a distinguishing meta id
// ("id:refCount") under which per-instance metadata can be attached.
//
// # Registration
//
// Targets are added once per reference:
//
//	reg := registry.New()
//	rec, err := reg.Add(validateEmail, "rule")
//
// Re-adding the same reference fails with [ErrAlreadyRegistered].
// Adding a distinct target with identical content succeeds and yields
// the same id with an incremented RefCount.
//
// # Introspection
//
// Records form a graph through their ChildrenIDs and Refs. [Registry.Tree]
// derives a depth-first tree from any root id, terminating cyclic
// branches with empty children instead of recursing forever. The full
// catalog can be serialized with [Registry.Export] for offline
// inspection.
//
// # Lifetime
//
// The registry holds strong references to its targets. Targets are
// released explicitly through [Registry.Evict], and [Registry.Reset]
// clears the whole catalog, which is primarily useful in tests.
//
// Most applications interact with the process-wide default registry
// via [Default]; isolated instances from [New] are for tests and
// embedding.
package registry
