// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/binaryshapes/mixor/fault"

	"github.com/go-viper/mapstructure/v2"
)

// ErrEmptyKeyChain is returned when a value is set with no key at all.
var ErrEmptyKeyChain = fault.New("config", "empty_key_chain", "")

// Store represents a general key value structure. The chain holds the
// segments of a nested key, from outermost to innermost.
type Store interface {
	Set(chain []string, v any) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// Map is an ordinary map[string]any which implements both the Store
// and Source interfaces. Nested maps represent nested keys.
type Map map[string]any

// Set implements the Store interface. Intermediate maps are created as
// needed and existing values are overridden, so applying sources in
// order leaves the last write for any key.
func (m Map) Set(chain []string, v any) error {
	if len(chain) == 0 {
		return ErrEmptyKeyChain
	}

	cur := map[string]any(m)
	for _, k := range chain[:len(chain)-1] {
		switch x := cur[k].(type) {
		case map[string]any:
			cur = x
		case Map:
			cur = x
		default:
			sub := make(map[string]any)
			cur[k] = sub
			cur = sub
		}
	}
	cur[chain[len(chain)-1]] = v
	return nil
}

// Apply implements the Source interface. It recursively walks the
// underlying map to find key value pairs to set on the given store.
func (m Map) Apply(store Store) error {
	return applyMap(m, store, nil)
}

func applyMap(m map[string]any, store Store, chain []string) error {
	for k, v := range m {
		switch x := v.(type) {
		case map[string]any:
			err := applyMap(x, store, append(chain, k))
			if err != nil {
				return err
			}
		case Map:
			err := applyMap(x, store, append(chain, k))
			if err != nil {
				return err
			}
		default:
			err := store.Set(append(chain, k), v)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Manager holds the merged view of all applied sources.
type Manager struct {
	store Map
}

// Read applies the given sources, in order, to a single merged view.
// Subsequent sources override previous sources.
func Read(srcs ...Source) (*Manager, error) {
	store := make(Map)
	for _, src := range srcs {
		err := src.Apply(store)
		if err != nil {
			return nil, err
		}
	}
	return &Manager{store: store}, nil
}

// Unmarshal unmarshals the merged view into v. Struct fields are
// matched to config keys via the "config" struct tag.
func (m *Manager) Unmarshal(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  v,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
			boolFromStringHookFunc(),
			sliceFromStringHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(m.store)
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// TypeCoercionError occurs when attempting to unmarshal a config
// value to a struct field whose type does not match the config
// value type, up to, coercion.
type TypeCoercionError struct {
	from  reflect.Value
	to    reflect.Value
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.from.Type().Name(), e.to.Type().Name(), e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, TypeCoercionError{
				from:  f,
				to:    t,
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(data.(string)))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(data.(string))
		case reflect.Int:
			return time.Duration(int64(data.(int))), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}

func boolFromStringHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return nil, errInvalidDecodeCondition
		}
		return strconv.ParseBool(data.(string))
	}
}

func sliceFromStringHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}

		s := strings.TrimSpace(data.(string))
		if s == "" {
			return []string{}, nil
		}

		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
}
