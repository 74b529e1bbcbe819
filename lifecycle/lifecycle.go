// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle provides helpers for releasing resources acquired
// while a dependency container builds its providers.
package lifecycle

import (
	"context"
	"errors"
)

// Hook represents functionality that needs to be performed when the
// resources built by a container are released.
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a func variant of the [Hook] interface.
type HookFunc func(context.Context) error

// Run implements the [Hook] interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type multiHook []Hook

func (mh multiHook) Run(ctx context.Context) error {
	errs := make([]error, 0, len(mh))
	for _, h := range mh {
		err := h.Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// MultiHook returns a [Hook] that's the logical concatenation of the
// provided [Hook]s. They're applied sequentially.
func MultiHook(hooks ...Hook) Hook {
	return multiHook(hooks)
}

// Context collects the close actions registered by provider factories
// while their container builds.
//
// A Context is not safe for concurrent use. The container serializes
// factory execution, so factories may use the Context from the build
// context without further coordination.
type Context struct {
	closers []Hook
}

// OnClose registers the given [Hook] to be executed when the resources
// built so far are released. It can be called multiple times; hooks
// run in reverse registration order, so a dependent closes before the
// dependencies it was built from.
func (c *Context) OnClose(hook Hook) {
	c.closers = append(c.closers, hook)
}

// Close returns the [Hook] which releases everything registered with
// [Context.OnClose], in reverse registration order. Every hook runs
// even when earlier ones fail and their errors are joined.
func (c *Context) Close() Hook {
	reversed := make(multiHook, 0, len(c.closers))
	for i := len(c.closers) - 1; i >= 0; i-- {
		reversed = append(reversed, c.closers[i])
	}
	return reversed
}

type key struct{}

var contextKey = &key{}

// NewContext returns a new [context.Context] containing the lifecycle
// [Context].
func NewContext(parent context.Context, c *Context) context.Context {
	return context.WithValue(parent, contextKey, c)
}

// FromContext tries to extract a lifecycle [Context] from the given
// [context.Context].
func FromContext(ctx context.Context) (*Context, bool) {
	lc, ok := ctx.Value(contextKey).(*Context)
	return lc, ok
}
