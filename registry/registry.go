// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package registry

import (
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/fingerprint"
	"github.com/binaryshapes/mixor/internal/typeshape"
	"github.com/binaryshapes/mixor/tracelog"
)

// Sentinel faults returned by the registry. Match them with errors.Is.
var (
	// ErrAlreadyRegistered is returned by Add when the exact same
	// reference is added twice.
	ErrAlreadyRegistered = fault.New("registry", "already_registered", "")

	// ErrNotFound is returned when a target or id is not in the
	// catalog.
	ErrNotFound = fault.New("registry", "not_found", "")

	// ErrInvalidTarget is returned by Add for targets without
	// reference identity, such as plain structs and scalars.
	ErrInvalidTarget = fault.New("registry", "invalid_target", "")

	// ErrExportFailed is returned when serializing the catalog fails.
	ErrExportFailed = fault.New("registry", "export_failed", "")

	// ErrCorrupted is the panic value raised when the catalog violates
	// its own structural invariants, e.g. a record listing a child id
	// that is absent. It marks a defect, not a runtime condition.
	ErrCorrupted = fault.New("registry", "corrupted", "")
)

type refEntry struct {
	id  string
	seq int

	// target is held to keep the reference alive, pinning its identity
	// address for the lifetime of the entry.
	target any
}

// Registry is a catalog of reference targets and their metadata.
//
// All methods are safe for concurrent use.
type Registry struct {
	log *slog.Logger

	mu      sync.RWMutex
	refs    map[uintptr]refEntry
	live    map[string]int
	records map[string]*Record
	metas   map[string]MetaRecord
}

type options struct {
	logHandler slog.Handler
}

// Option configures a [Registry].
type Option func(*options)

// LogHandler sets the slog.Handler used for registry lifecycle logs.
// The handler is wrapped so records carry any active trace context.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = tracelog.NewHandler(h)
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	o := &options{
		logHandler: tracelog.Noop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Registry{
		log:     slog.New(o.logHandler),
		refs:    make(map[uintptr]refEntry),
		live:    make(map[string]int),
		records: make(map[string]*Record),
		metas:   make(map[string]MetaRecord),
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return New()
})

// Default returns the process-wide registry shared by components which
// are not given an explicit one.
func Default() *Registry {
	return defaultRegistry()
}

// Add registers target under tag and returns its record snapshot.
//
// The record id is derived from the target's content fingerprint, with
// extras participating in the digest when the content alone is not
// unique enough. Adding the exact same reference twice fails with
// [ErrAlreadyRegistered]. Adding a distinct reference with identical
// content increments the existing record's RefCount and mints a fresh
// MetaID.
//
// Targets must have reference identity; funcs, pointers, maps, slices
// and channels qualify. Anything else fails with [ErrInvalidTarget].
func (r *Registry) Add(target any, tag string, extras ...any) (Record, error) {
	identity, ok := typeshape.Identity(target)
	if !ok {
		return Record{}, fault.Newf("registry", "invalid_target",
			"target of type %s has no reference identity", typeshape.Of(target))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, dup := r.refs[identity]; dup {
		return Record{}, fault.Newf("registry", "already_registered",
			"target already registered as %q", entry.id)
	}

	fp := fingerprint.Hash(append([]any{target}, extras...)...)
	id := tag + ":" + fp.Value

	rec, exists := r.records[id]
	if !exists {
		rec = &Record{
			ID:          id,
			Tag:         tag,
			Category:    categoryOf(target),
			ChildrenIDs: []string{},
			Refs:        []string{},
		}
		r.records[id] = rec
	}
	rec.RefCount++

	r.refs[identity] = refEntry{id: id, seq: rec.RefCount, target: target}
	r.live[id]++

	snap := rec.snapshot()
	snap.MetaID = metaID(id, rec.RefCount)

	r.log.Debug("component registered",
		tracelog.Component(id),
		tracelog.Tag(tag),
		slog.Int("ref_count", rec.RefCount),
	)
	return snap, nil
}

// Get returns a snapshot of the record held for target. It fails with
// [ErrNotFound] if the reference was never added.
func (r *Registry) Get(target any) (Record, error) {
	identity, ok := typeshape.Identity(target)
	if !ok {
		return Record{}, fault.Newf("registry", "not_found",
			"target of type %s has no reference identity", typeshape.Of(target))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.refs[identity]
	if !ok {
		return Record{}, fault.New("registry", "not_found", "target is not registered")
	}

	snap := r.mustRecord(entry.id).snapshot()
	snap.MetaID = metaID(entry.id, entry.seq)
	return snap, nil
}

// Set shallow-merges patch into the record held for target. It fails
// with [ErrNotFound] if the reference was never added.
//
// The record is shared by every registration of the same content;
// per-registration metadata belongs in meta records, see Annotate.
func (r *Registry) Set(target any, patch Patch) error {
	identity, ok := typeshape.Identity(target)
	if !ok {
		return fault.Newf("registry", "not_found",
			"target of type %s has no reference identity", typeshape.Of(target))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.refs[identity]
	if !ok {
		return fault.New("registry", "not_found", "target is not registered")
	}

	patch.apply(r.mustRecord(entry.id))
	return nil
}

// Exists reports whether target is registered. It never fails.
func (r *Registry) Exists(target any) bool {
	identity, ok := typeshape.Identity(target)
	if !ok {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok = r.refs[identity]
	return ok
}

// Describe returns the meta record for the given meta id, creating an
// empty one on first access. It fails with [ErrNotFound] if the meta
// id is malformed or does not correspond to a live registration.
func (r *Registry) Describe(metaID string) (MetaRecord, error) {
	id, seq, err := splitMetaID(metaID)
	if err != nil {
		return MetaRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkMetaID(metaID, id, seq); err != nil {
		return MetaRecord{}, err
	}

	m, ok := r.metas[metaID]
	if !ok {
		m = MetaRecord{MetaID: metaID}
		r.metas[metaID] = m
	}
	return m.snapshot(), nil
}

// Annotate shallow-merges patch into the meta record for the given
// meta id, creating the record on first access. It fails with
// [ErrNotFound] under the same conditions as Describe.
func (r *Registry) Annotate(metaID string, patch MetaPatch) error {
	id, seq, err := splitMetaID(metaID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkMetaID(metaID, id, seq); err != nil {
		return err
	}

	m, ok := r.metas[metaID]
	if !ok {
		m = MetaRecord{MetaID: metaID}
	}
	patch.apply(&m)
	r.metas[metaID] = m
	return nil
}

// Evict releases the reference held for target and reports whether it
// was registered. When the last reference of a record is evicted the
// record and its meta records are dropped from the catalog.
func (r *Registry) Evict(target any) bool {
	identity, ok := typeshape.Identity(target)
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.refs[identity]
	if !ok {
		return false
	}
	delete(r.refs, identity)

	r.live[entry.id]--
	if r.live[entry.id] > 0 {
		return true
	}
	delete(r.live, entry.id)
	delete(r.records, entry.id)
	for k := range r.metas {
		if strings.HasPrefix(k, entry.id+":") {
			delete(r.metas, k)
		}
	}

	r.log.Debug("component evicted", tracelog.Component(entry.id))
	return true
}

// Reset clears the catalog. It is primarily useful in tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refs = make(map[uintptr]refEntry)
	r.live = make(map[string]int)
	r.records = make(map[string]*Record)
	r.metas = make(map[string]MetaRecord)
}

// Len returns the number of live registered references.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.refs)
}

// mustRecord returns the record for a live id. A live ref entry
// pointing at a missing record means the catalog invariants were
// broken, which is a defect worth crashing on.
func (r *Registry) mustRecord(id string) *Record {
	rec, ok := r.records[id]
	if !ok {
		panic(fault.Newf("registry", "corrupted", "live reference points at missing record %q", id))
	}
	return rec
}

func (r *Registry) checkMetaID(raw, id string, seq int) error {
	rec, ok := r.records[id]
	if !ok {
		return fault.Newf("registry", "not_found", "no record for meta id %q", raw)
	}
	if seq < 1 || seq > rec.RefCount {
		return fault.Newf("registry", "not_found",
			"meta id %q is out of range for %d registrations", raw, rec.RefCount)
	}
	return nil
}

func metaID(id string, seq int) string {
	return id + ":" + strconv.Itoa(seq)
}

func splitMetaID(raw string) (id string, seq int, err error) {
	i := strings.LastIndex(raw, ":")
	if i <= 0 || i == len(raw)-1 {
		return "", 0, fault.Newf("registry", "not_found", "malformed meta id %q", raw)
	}

	seq, perr := strconv.Atoi(raw[i+1:])
	if perr != nil {
		return "", 0, fault.Newf("registry", "not_found", "malformed meta id %q", raw)
	}
	return raw[:i], seq, nil
}

func categoryOf(target any) Category {
	if reflect.ValueOf(target).Kind() == reflect.Func {
		return CategoryFunction
	}
	return CategoryObject
}
