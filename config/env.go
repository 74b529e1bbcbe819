// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	environ  func() []string
	prefixes []string
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process. If any prefixes are given, only the
// variables whose name starts with one of them are applied.
func FromEnv(prefixes ...string) Env {
	return Env{
		environ:  os.Environ,
		prefixes: prefixes,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	m := make(Map)
	env := src.environ()
	for _, pair := range env {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || !src.keep(k) {
			continue
		}
		m[k] = v
	}
	return m.Apply(store)
}

func (src Env) keep(k string) bool {
	if len(src.prefixes) == 0 {
		return true
	}
	for _, prefix := range src.prefixes {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}
