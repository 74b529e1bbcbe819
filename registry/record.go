// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package registry

import (
	"maps"
	"slices"

	"github.com/binaryshapes/mixor/result"
)

// Category classifies a registered target by its callable nature.
type Category string

const (
	// CategoryFunction marks targets which are funcs.
	CategoryFunction Category = "function"

	// CategoryObject marks every other reference target.
	CategoryObject Category = "object"
)

// Record is the metadata held for a registered target.
//
// Records returned by the registry are snapshots: mutating their
// slices or maps never affects the stored state.
type Record struct {
	// ID is the structural identity of the target, derived as
	// "tag:digest" from its content fingerprint.
	ID string `json:"id"`

	// MetaID is the secondary identity of this registration,
	// "id:refCount" at the time the target was added. It is only set
	// on snapshots obtained through Add and Get.
	MetaID string `json:"metaId,omitempty"`

	// Tag names the kind of component, e.g. "value", "schema",
	// "provider".
	Tag string `json:"tag"`

	// Category reports whether the target is callable.
	Category Category `json:"category"`

	// SubType optionally refines the tag, e.g. "async".
	SubType string `json:"subType,omitempty"`

	// ChildrenIDs lists the ids of components composed into this one.
	ChildrenIDs []string `json:"childrenIds"`

	// Refs lists ids of components referenced by this one without
	// being part of its composition.
	Refs []string `json:"refs"`

	// Traceable marks the component for tracer instrumentation.
	Traceable bool `json:"traceable"`

	// Injectable marks the component as resolvable through a
	// container.
	Injectable bool `json:"injectable"`

	// Meta carries free-form structured metadata.
	Meta map[string]any `json:"meta,omitempty"`

	// RefCount counts how many times this content has been
	// registered. It only ever grows.
	RefCount int `json:"refCount"`
}

func (rec *Record) snapshot() Record {
	out := *rec
	out.ChildrenIDs = slices.Clone(rec.ChildrenIDs)
	out.Refs = slices.Clone(rec.Refs)
	out.Meta = maps.Clone(rec.Meta)
	return out
}

// Patch describes a shallow merge into a [Record]. Only set fields are
// applied; set slice and map fields replace their targets wholesale.
type Patch struct {
	Category    result.Option[Category]
	SubType     result.Option[string]
	ChildrenIDs result.Option[[]string]
	Refs        result.Option[[]string]
	Traceable   result.Option[bool]
	Injectable  result.Option[bool]
	Meta        result.Option[map[string]any]
}

func (p Patch) apply(rec *Record) {
	if v, ok := p.Category.Get(); ok {
		rec.Category = v
	}
	if v, ok := p.SubType.Get(); ok {
		rec.SubType = v
	}
	if v, ok := p.ChildrenIDs.Get(); ok {
		rec.ChildrenIDs = slices.Clone(v)
	}
	if v, ok := p.Refs.Get(); ok {
		rec.Refs = slices.Clone(v)
	}
	if v, ok := p.Traceable.Get(); ok {
		rec.Traceable = v
	}
	if v, ok := p.Injectable.Get(); ok {
		rec.Injectable = v
	}
	if v, ok := p.Meta.Get(); ok {
		rec.Meta = maps.Clone(v)
	}
}

// MetaRecord carries the human metadata attached to one registration
// of a target, keyed by its meta id. It exists so N structurally
// identical registrations can be described independently.
type MetaRecord struct {
	MetaID      string   `json:"metaId"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Example     string   `json:"example,omitempty"`
	ChildrenIDs []string `json:"childrenIds,omitempty"`
}

func (m MetaRecord) snapshot() MetaRecord {
	m.ChildrenIDs = slices.Clone(m.ChildrenIDs)
	return m
}

// MetaPatch describes a shallow merge into a [MetaRecord].
type MetaPatch struct {
	Name        result.Option[string]
	Description result.Option[string]
	Example     result.Option[string]
	ChildrenIDs result.Option[[]string]
}

func (p MetaPatch) apply(m *MetaRecord) {
	if v, ok := p.Name.Get(); ok {
		m.Name = v
	}
	if v, ok := p.Description.Get(); ok {
		m.Description = v
	}
	if v, ok := p.Example.Get(); ok {
		m.Example = v
	}
	if v, ok := p.ChildrenIDs.Get(); ok {
		m.ChildrenIDs = slices.Clone(v)
	}
}
