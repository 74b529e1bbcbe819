// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package container implements dependency resolution for components.
//
// Three pieces describe a dependency graph:
//
//   - A [Port] is a named, typed slot for something the graph needs
//     but does not construct, such as a database handle.
//   - An [Adapter] carries the concrete implementation for exactly the
//     port it was built with via [Adapt].
//   - A [Provider] declares named dependencies on ports or other
//     providers and a factory which receives them resolved.
//
// A [Container] wires the pieces together:
//
//	db := container.NewPort[Database]("db")
//
//	repo := container.Provide(func(ctx context.Context, deps container.Deps) (*Repository, error) {
//		return &Repository{DB: container.MustDep[Database](deps, "db")}, nil
//	}).Use("db", db)
//
//	c := container.New()
//	_ = c.Import("repo", repo)
//	_ = container.Bind(c, db, container.Adapt[Database](db, postgres))
//
//	if err := c.Build(ctx); err != nil {
//		// a misconfigured graph fails as a whole
//	}
//	r, err := container.Resolve[*Repository](c, "repo")
//
// Build resolves every imported provider eagerly and is terminal:
// querying before it fails with [ErrNotBuilt], importing or binding
// after it fails with [ErrAlreadyBuilt]. Each provider's factory runs
// exactly once per container and its instance is shared by every
// dependent. Factories may register release actions through the
// lifecycle context carried by their ctx argument; [Container.Close]
// runs them in reverse build order.
//
// Ports, adapters, providers and the container itself are recorded in
// a registry, so the dependency graph can be rendered with the
// registry's Tree.
package container
