// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnv represents a Source where its underlying values
// are read from a dotenv file.
type DotEnv struct {
	path string
}

// FromDotEnv returns a Source which will apply its config from the
// dotenv file at the given path. A missing file is not an error since
// dotenv files are a local development convenience.
func FromDotEnv(path string) DotEnv {
	return DotEnv{path: path}
}

// InvalidDotEnvError occurs if the dotenv file exists but cannot be parsed.
type InvalidDotEnvError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e InvalidDotEnvError) Error() string {
	return fmt.Sprintf("invalid dotenv file %q: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidDotEnvError) Unwrap() error {
	return e.Cause
}

// Apply implements the Source interface.
func (src DotEnv) Apply(store Store) error {
	vals, err := godotenv.Read(src.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return InvalidDotEnvError{Path: src.path, Cause: err}
	}

	m := make(Map, len(vals))
	for k, v := range vals {
		m[k] = v
	}
	return m.Apply(store)
}
