// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/internal/typeshape"
	"github.com/binaryshapes/mixor/lifecycle"
	"github.com/binaryshapes/mixor/registry"
	"github.com/binaryshapes/mixor/result"
	"github.com/binaryshapes/mixor/tracelog"
)

var (
	// ErrInvalidBinding is returned when an adapter is bound to a port
	// it was not built for, or when a declared dependency is neither a
	// port nor a provider.
	ErrInvalidBinding = fault.New("container", "invalid_binding", "")

	// ErrNoAdapterBound is returned during Build when a provider
	// requires a port that has no adapter.
	ErrNoAdapterBound = fault.New("container", "no_adapter_bound", "")

	// ErrCircularDependency is returned during Build when resolution
	// re-enters a provider that is already resolving.
	ErrCircularDependency = fault.New("container", "circular_dependency", "")

	// ErrNotBuilt is returned by Get and Resolve before Build has
	// succeeded.
	ErrNotBuilt = fault.New("container", "not_built", "")

	// ErrAlreadyBuilt is returned when a built container is built,
	// imported into or bound again. Build is terminal.
	ErrAlreadyBuilt = fault.New("container", "already_built", "")

	// ErrCannotOverrideUnbound is returned by Override for a port
	// without a prior binding.
	ErrCannotOverrideUnbound = fault.New("container", "cannot_override_unbound", "")

	// ErrAlreadyBound is returned by Bind for a port that already has
	// an adapter. Replacing a binding requires Override.
	ErrAlreadyBound = fault.New("container", "already_bound", "")

	// ErrAlreadyImported is returned by Import when the name is taken.
	ErrAlreadyImported = fault.New("container", "already_imported", "")

	// ErrNotFound is returned by Get for names that were never
	// imported.
	ErrNotFound = fault.New("container", "not_found", "")

	// ErrWrongType is returned by Resolve and Dep when the resolved
	// value does not have the requested type.
	ErrWrongType = fault.New("container", "wrong_type", "")

	// ErrMissingDependency is returned by Dep for names the provider
	// never declared.
	ErrMissingDependency = fault.New("container", "missing_dependency", "")

	// ErrFactoryFailed wraps errors returned by provider factories.
	ErrFactoryFailed = fault.New("container", "factory_failed", "")
)

type options struct {
	logHandler slog.Handler
	registry   *registry.Registry
}

// Option configures a [Container].
type Option func(*options)

// LogHandler sets the handler the container logs through. The default
// discards everything.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.logHandler = tracelog.NewHandler(h)
		}
	}
}

// Registry sets the registry the container records its graph in. The
// default is the process-wide registry.
func Registry(r *registry.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

type binding struct {
	adapter any
	impl    any
	id      string
}

// Container wires providers to the ports and providers they depend on,
// and builds them eagerly into singletons.
//
// A container starts unbuilt: imports and bindings may be added and
// replaced freely. Build resolves every imported provider exactly once
// and flips the container into its built state, which is terminal. All
// methods are safe for concurrent use.
type Container struct {
	log *slog.Logger
	reg *registry.Registry

	mu        sync.Mutex
	built     bool
	imports   map[string]*Provider
	names     []string
	bindings  map[portRef]binding
	resolved  map[*Provider]any
	resolving map[*Provider]struct{}
	ids       map[any]string
	id        string
	hooks     *lifecycle.Context
}

// New returns an empty, unbuilt container.
func New(opts ...Option) *Container {
	o := &options{
		logHandler: tracelog.Noop(),
		registry:   registry.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	c := &Container{
		log:       slog.New(o.logHandler),
		reg:       o.registry,
		imports:   make(map[string]*Provider),
		bindings:  make(map[portRef]binding),
		resolved:  make(map[*Provider]any),
		resolving: make(map[*Provider]struct{}),
		ids:       make(map[any]string),
	}

	// Containers are stateful, so each one gets its own record even
	// when two hold identical graphs.
	if rec, err := c.reg.Add(c, "container", uuid.NewString()); err == nil {
		c.id = rec.ID
		c.ids[c] = rec.ID
	}
	return c
}

// ID returns the container's registry id.
func (c *Container) ID() string { return c.id }

// Built reports whether Build has succeeded.
func (c *Container) Built() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built
}

// Import registers a provider under name. The provider's dependencies
// are resolved when the container builds.
func (c *Container) Import(name string, p *Provider) error {
	if p == nil {
		panic("container: nil provider")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return fault.Newf("container", "already_built", "cannot import %q", name)
	}
	if _, ok := c.imports[name]; ok {
		return fault.Newf("container", "already_imported", "%q", name)
	}

	c.imports[name] = p
	c.names = append(c.names, name)

	c.log.Debug("provider imported", slog.String("name", name))
	return nil
}

// Bind attaches an adapter to a port. The adapter must have been built
// for that exact port; one built for another port of the same shape
// fails with [ErrInvalidBinding]. Binding a port twice fails with
// [ErrAlreadyBound].
func Bind[T any](c *Container, port *Port[T], adapter *Adapter[T]) error {
	if port == nil || adapter == nil {
		panic("container: nil port or adapter")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return fault.Newf("container", "already_built", "cannot bind port %q", port.Name())
	}
	if adapter.port != port {
		return fault.Newf(
			"container",
			"invalid_binding",
			"adapter built for port %q cannot be bound to port %q",
			adapter.port.Name(),
			port.Name(),
		)
	}
	if _, ok := c.bindings[port]; ok {
		return fault.Newf("container", "already_bound", "port %q already has an adapter", port.Name())
	}

	return bindLocked(c, port, adapter, binding{})
}

// Override replaces the adapter bound to a port. Overriding a port
// that was never bound fails with [ErrCannotOverrideUnbound].
func Override[T any](c *Container, port *Port[T], adapter *Adapter[T]) error {
	if port == nil || adapter == nil {
		panic("container: nil port or adapter")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return fault.Newf("container", "already_built", "cannot override port %q", port.Name())
	}

	prev, ok := c.bindings[port]
	if !ok {
		return fault.Newf("container", "cannot_override_unbound", "port %q has no adapter to override", port.Name())
	}
	if adapter.port != port {
		return fault.Newf(
			"container",
			"invalid_binding",
			"adapter built for port %q cannot be bound to port %q",
			adapter.port.Name(),
			port.Name(),
		)
	}

	return bindLocked(c, port, adapter, prev)
}

// bindLocked records the binding and its registry bookkeeping. When
// prev holds an earlier binding its record is evicted and its child
// entry replaced.
func bindLocked[T any](c *Container, port *Port[T], adapter *Adapter[T], prev binding) error {
	portID, err := c.register(port, "port", port.Name(), port.Shape())
	if err != nil {
		return err
	}

	adapterID, err := c.register(adapter, "adapter", port.Name(), adapter.impl)
	if err != nil {
		return err
	}
	if err := c.reg.Set(adapter, registry.Patch{
		ChildrenIDs: result.Some([]string{portID}),
		Injectable:  result.Some(true),
	}); err != nil {
		return err
	}

	if prev.adapter != nil {
		c.reg.Evict(prev.adapter)
		delete(c.ids, prev.adapter)
	}
	if err := c.adoptChild(adapterID, prev.id); err != nil {
		return err
	}

	c.bindings[port] = binding{adapter: adapter, impl: adapter.impl, id: adapterID}

	c.log.Debug("adapter bound",
		tracelog.Component(adapterID),
		slog.String("port", port.Name()),
	)
	return nil
}

// Build resolves every imported provider, depth first, caching each
// result so factories run exactly once. It is terminal: once a
// container is built, imports, bindings and further builds fail with
// [ErrAlreadyBuilt].
//
// Factories may register release hooks through the [lifecycle.Context]
// carried by ctx. On failure the hooks registered so far run in
// reverse order and the container stays unbuilt.
func (c *Container) Build(ctx context.Context) error {
	spanCtx, span := otel.Tracer("container").Start(ctx, "Container.Build")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		err := fault.New("container", "already_built", "build is terminal")
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	lc := &lifecycle.Context{}

	err := c.buildLocked(lifecycle.NewContext(spanCtx, lc))
	if err != nil {
		if closeErr := lc.Close().Run(spanCtx); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		clear(c.resolved)

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.ErrorContext(spanCtx, "container build failed",
			tracelog.Component(c.id),
			tracelog.Error(err),
		)
		return err
	}

	c.hooks = lc
	c.built = true

	span.SetStatus(codes.Ok, "")
	c.log.InfoContext(spanCtx, "container built",
		tracelog.Component(c.id),
		slog.Int("providers", len(c.names)),
	)
	return nil
}

func (c *Container) buildLocked(ctx context.Context) error {
	// Snapshot the graph first so resolution failures still leave a
	// complete picture in the registry.
	for _, name := range c.names {
		id, err := c.registerProvider(c.imports[name])
		if err != nil {
			return err
		}
		if err := c.adoptChild(id, ""); err != nil {
			return err
		}
	}

	for _, name := range c.names {
		if _, err := c.resolve(ctx, c.imports[name]); err != nil {
			return err
		}
	}
	return nil
}

// Close runs the release hooks captured during Build, last registered
// first, so dependents release before their dependencies. It is a
// no-op on unbuilt or already closed containers.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	hooks := c.hooks
	c.hooks = nil
	c.mu.Unlock()

	if hooks == nil {
		return nil
	}

	c.log.Debug("container closing", tracelog.Component(c.id))
	return hooks.Close().Run(ctx)
}

// Get returns the instance resolved for the provider imported under
// name.
func (c *Container) Get(name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.built {
		return nil, fault.Newf("container", "not_built", "cannot get %q before Build", name)
	}

	p, ok := c.imports[name]
	if !ok {
		return nil, fault.Newf("container", "not_found", "no provider imported as %q", name)
	}
	return c.resolved[p], nil
}

// Resolve returns the instance imported under name, typed as T.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T

	v, err := c.Get(name)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fault.Newf(
			"container",
			"wrong_type",
			"%q resolved to %T, want %s",
			name,
			v,
			typeshape.Static[T](),
		)
	}
	return typed, nil
}

// register adds target to the registry under tag, tolerating targets
// that are already registered, and memoizes the id.
func (c *Container) register(target any, tag string, extras ...any) (string, error) {
	if id, ok := c.ids[target]; ok {
		return id, nil
	}

	rec, err := c.reg.Add(target, tag, extras...)
	if errors.Is(err, registry.ErrAlreadyRegistered) {
		rec, err = c.reg.Get(target)
	}
	if err != nil {
		return "", err
	}

	c.ids[target] = rec.ID
	return rec.ID, nil
}

// registerProvider records p and, recursively, everything it uses,
// then patches the children onto its record.
func (c *Container) registerProvider(p *Provider) (string, error) {
	if id, ok := c.ids[p]; ok {
		return id, nil
	}

	id, err := c.register(p, "provider", p.raw, p.shape, p.order)
	if err != nil {
		return "", err
	}

	children := make([]string, 0, len(p.order))
	for _, name := range p.order {
		switch dep := p.uses[name].(type) {
		case *Provider:
			childID, err := c.registerProvider(dep)
			if err != nil {
				return "", err
			}
			children = append(children, childID)
		case portRef:
			childID, err := c.register(dep, "port", dep.Name(), dep.Shape())
			if err != nil {
				return "", err
			}
			children = append(children, childID)
		default:
			return "", fault.Newf(
				"container",
				"invalid_binding",
				"dependency %q of provider %q is neither a port nor a provider",
				name,
				id,
			)
		}
	}

	if err := c.reg.Set(p, registry.Patch{
		ChildrenIDs: result.Some(children),
		Injectable:  result.Some(true),
	}); err != nil {
		return "", err
	}
	return id, nil
}

// resolve returns the singleton for p, building it and its
// dependencies first when needed.
func (c *Container) resolve(ctx context.Context, p *Provider) (any, error) {
	if v, ok := c.resolved[p]; ok {
		return v, nil
	}

	id := c.ids[p]

	if _, inflight := c.resolving[p]; inflight {
		return nil, fault.Newf("container", "circular_dependency", "resolution re-entered provider %q", id)
	}
	c.resolving[p] = struct{}{}
	defer delete(c.resolving, p)

	spanCtx, span := otel.Tracer("container").Start(ctx, id)
	defer span.End()

	deps := make(Deps, len(p.order))
	for _, name := range p.order {
		switch dep := p.uses[name].(type) {
		case *Provider:
			v, err := c.resolve(spanCtx, dep)
			if err != nil {
				return nil, err
			}
			deps[name] = v
		case portRef:
			b, ok := c.bindings[dep]
			if !ok {
				return nil, fault.Newf(
					"container",
					"no_adapter_bound",
					"port %q required by provider %q",
					dep.Name(),
					id,
				)
			}
			deps[name] = b.impl
		default:
			return nil, fault.Newf(
				"container",
				"invalid_binding",
				"dependency %q of provider %q is neither a port nor a provider",
				name,
				id,
			)
		}
	}

	out, err := callFactory(spanCtx, p, deps)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fault.Wrap("container", "factory_failed", fmt.Sprintf("provider %q", id), err)
	}
	span.SetStatus(codes.Ok, "")

	c.resolved[p] = out
	c.log.DebugContext(spanCtx, "provider resolved", tracelog.Component(id))
	return out, nil
}

// callFactory invokes the factory, converting a panic into an error so
// one misbehaving provider cannot take the build down.
func callFactory(ctx context.Context, p *Provider, deps Deps) (out any, err error) {
	defer fault.Recover(&err)
	return p.factory(ctx, deps)
}

// adoptChild appends id to the container's children, replacing prevID
// when set. Re-adopting an id is a no-op, so a failed build may be
// retried without duplicating children.
func (c *Container) adoptChild(id, prevID string) error {
	if c.id == "" {
		return nil
	}

	rec, err := c.reg.Get(c)
	if err != nil {
		return err
	}

	children := rec.ChildrenIDs
	if prevID != "" {
		children = slices.DeleteFunc(children, func(cid string) bool { return cid == prevID })
	}
	if slices.Contains(children, id) {
		return nil
	}
	children = append(children, id)

	return c.reg.Set(c, registry.Patch{ChildrenIDs: result.Some(children)})
}
