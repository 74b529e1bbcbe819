// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package typeshape

import (
	"reflect"
	"runtime"
)

// Of returns the string form of v's dynamic type, or "nil".
func Of(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// OfAll maps Of over vs.
func OfAll(vs ...any) []string {
	if len(vs) == 0 {
		return nil
	}

	shapes := make([]string, len(vs))
	for i, v := range vs {
		shapes[i] = Of(v)
	}
	return shapes
}

// Static returns the string form of the static type T. Unlike Of it
// works for interface types, whose zero value carries no dynamic type.
func Static[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// FuncName returns the fully qualified runtime name of fn, e.g.
// "github.com/binaryshapes/mixor/schema.NonEmpty". It returns "" if fn
// is not a func or its symbol cannot be resolved.
func FuncName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}

	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return ""
	}
	return f.Name()
}

// Identity returns a stable address identifying v for reference
// semantics. It reports false for nil values and for value kinds,
// which have no identity of their own.
func Identity(v any) (uintptr, bool) {
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}
