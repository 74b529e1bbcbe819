// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package container

import (
	"context"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/internal/typeshape"
)

// Deps is the bag of resolved dependencies handed to a provider
// factory, keyed by the names declared with [Provider.Use].
type Deps map[string]any

// Dep returns the dependency stored under name, typed as T. It fails
// with [ErrMissingDependency] when the name was never declared and
// with [ErrWrongType] when the resolved value is not a T.
func Dep[T any](deps Deps, name string) (T, error) {
	var zero T

	raw, ok := deps[name]
	if !ok {
		return zero, fault.Newf("container", "missing_dependency", "%q was not declared", name)
	}

	v, ok := raw.(T)
	if !ok {
		return zero, fault.Newf(
			"container",
			"wrong_type",
			"dependency %q has type %T, want %s",
			name,
			raw,
			typeshape.Static[T](),
		)
	}
	return v, nil
}

// MustDep is like [Dep] but panics on failure. It is meant for
// factories whose dependency names are static.
func MustDep[T any](deps Deps, name string) T {
	return fault.Must(Dep[T](deps, name))
}

// Provider declares named dependencies and a factory which builds a
// value from them.
//
// A Provider is not safe for concurrent use while it is still being
// wired: declare all dependencies with Use before importing it into a
// container.
type Provider struct {
	uses    map[string]any
	order   []string
	raw     any
	shape   string
	factory func(context.Context, Deps) (any, error)
}

// Provide returns a provider around factory. The factory receives the
// dependencies declared with [Provider.Use], resolved.
func Provide[T any](factory func(context.Context, Deps) (T, error)) *Provider {
	if factory == nil {
		panic("container: nil factory")
	}

	return &Provider{
		uses:  make(map[string]any),
		raw:   factory,
		shape: typeshape.Static[T](),
		factory: func(ctx context.Context, deps Deps) (any, error) {
			return factory(ctx, deps)
		},
	}
}

// Use declares a named dependency. The dep must be a [Port] or another
// [Provider]; anything else fails resolution with [ErrInvalidBinding].
// Declaring a name twice replaces the earlier dependency.
//
// Use returns the provider, so declarations chain:
//
//	container.Provide(newRepository).Use("db", dbPort).Use("cache", cacheProvider)
func (p *Provider) Use(name string, dep any) *Provider {
	if dep == nil {
		panic("container: nil dependency")
	}

	if _, ok := p.uses[name]; !ok {
		p.order = append(p.order, name)
	}
	p.uses[name] = dep
	return p
}
