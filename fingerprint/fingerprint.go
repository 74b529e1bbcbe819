// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package fingerprint derives stable content digests for arbitrary Go
// values.
//
// A [Fingerprint] identifies a value by what it is made of rather than
// by where it lives in memory. Two structurally equivalent values, for
// example two maps holding the same entries or two pointers to equal
// structs, share a digest. Funcs are identified by their runtime
// symbol, so distinct references to the same declaration also share a
// digest.
//
// Fingerprints are the identity layer underneath the component
// registry: records are keyed as "tag:digest" and repeated
// registrations of structurally identical targets are detected by
// digest equality.
package fingerprint

import (
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maxDepth bounds recursion over self referential values. Nesting
// beyond it degrades to the type name, keeping Hash total.
const maxDepth = 32

// entrySeparator splits top level values in the canonical form so that
// Hash("ab") and Hash("a", "b") stay distinct.
const entrySeparator = 0x1f

// Fingerprint is the digest of one or more values.
type Fingerprint struct {
	// Value is the hex encoded 64-bit digest of the canonical form.
	Value string

	// Keys lists the sorted, deduplicated top level field and map key
	// names found across the hashed values. Entries holding nil values
	// are excluded.
	Keys []string
}

// String returns the digest value.
func (f Fingerprint) String() string {
	return f.Value
}

// Hash derives the fingerprint of values.
//
// The canonical form is built per value: primitives use their string
// form, funcs their runtime symbol, slices and arrays an element-wise
// join, and maps and structs their entries sorted by key so that key
// order never changes the digest. Nil values serialize to an empty
// placeholder token, which keeps a struct with an unset field distinct
// from one without the field at all.
//
// Hash is pure and never panics.
func Hash(values ...any) Fingerprint {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(entrySeparator)
		}
		writeValue(&sb, reflect.ValueOf(v), 0)
	}

	keySet := make(map[string]struct{})
	for _, v := range values {
		collectKeys(keySet, v)
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		keys = nil
	}

	return Fingerprint{
		Value: strconv.FormatUint(xxhash.Sum64String(sb.String()), 16),
		Keys:  keys,
	}
}

func writeValue(sb *strings.Builder, rv reflect.Value, depth int) {
	if !rv.IsValid() {
		return
	}
	if depth > maxDepth {
		sb.WriteString(rv.Type().String())
		return
	}

	switch rv.Kind() {
	case reflect.Bool:
		sb.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		sb.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		sb.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		sb.WriteString(strconv.FormatComplex(rv.Complex(), 'g', -1, 128))
	case reflect.String:
		sb.WriteString(rv.String())
	case reflect.Func:
		writeFunc(sb, rv)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}
		writeValue(sb, rv.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		writeList(sb, rv, depth)
	case reflect.Map:
		writeMap(sb, rv, depth)
	case reflect.Struct:
		writeStruct(sb, rv, depth)
	default:
		// Chans and unsafe pointers carry no structural content.
		sb.WriteString(rv.Type().String())
	}
}

// writeFunc identifies a func by its runtime symbol. Two references to
// the same declaration, or two closures minted by the same source
// location, serialize identically.
func writeFunc(sb *strings.Builder, rv reflect.Value) {
	if rv.IsNil() {
		return
	}

	name := rv.Type().String()
	if f := runtime.FuncForPC(rv.Pointer()); f != nil {
		name = f.Name()
	}
	sb.WriteString(name)
}

func writeList(sb *strings.Builder, rv reflect.Value, depth int) {
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return
	}

	sb.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeValue(sb, rv.Index(i), depth+1)
	}
	sb.WriteByte(']')
}

func writeMap(sb *strings.Builder, rv reflect.Value, depth int) {
	if rv.IsNil() {
		return
	}

	type entry struct {
		key   string
		value reflect.Value
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var kb strings.Builder
		writeValue(&kb, iter.Key(), depth+1)
		entries = append(entries, entry{key: kb.String(), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	sb.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.key)
		sb.WriteByte('=')
		writeValue(sb, e.value, depth+1)
	}
	sb.WriteByte('}')
}

// writeStruct serializes exported fields sorted by name. The struct
// type name is deliberately left out: identity is structural, so two
// types holding the same fields and values are the same content.
func writeStruct(sb *strings.Builder, rv reflect.Value, depth int) {
	rt := rv.Type()

	type entry struct {
		name  string
		value reflect.Value
	}

	entries := make([]entry, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		entries = append(entries, entry{name: f.Name, value: rv.Field(i)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})

	sb.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.name)
		sb.WriteByte('=')
		writeValue(sb, e.value, depth+1)
	}
	sb.WriteByte('}')
}

// collectKeys gathers the top level entry names of v into set. Only
// string keyed maps and structs contribute keys, and entries holding
// nil values are skipped.
func collectKeys(set map[string]struct{}, v any) {
	if v == nil {
		return
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			if isNilValue(iter.Value()) {
				continue
			}
			set[iter.Key().String()] = struct{}{}
		}
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			if isNilValue(rv.Field(i)) {
				continue
			}
			set[f.Name] = struct{}{}
		}
	}
}

func isNilValue(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
