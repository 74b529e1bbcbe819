// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package container

import (
	"context"
	"fmt"

	"github.com/binaryshapes/mixor/lifecycle"
	"github.com/binaryshapes/mixor/registry"
)

func Example() {
	c := New(Registry(registry.New()))

	port := NewPort[testStore]("store")
	if err := Bind(c, port, Adapt[testStore](port, &memStore{kind: "memory"})); err != nil {
		fmt.Println(err)
		return
	}

	repo := Provide(func(ctx context.Context, deps Deps) (*testRepo, error) {
		return &testRepo{store: MustDep[testStore](deps, "store")}, nil
	}).Use("store", port)

	if err := c.Import("repo", repo); err != nil {
		fmt.Println(err)
		return
	}
	if err := c.Build(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	r, err := Resolve[*testRepo](c, "repo")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(r.store.Kind())
	// Output: memory
}

func ExampleBind() {
	c := New(Registry(registry.New()))

	primary := NewPort[testStore]("primary")
	replica := NewPort[testStore]("replica")

	err := Bind(c, replica, Adapt[testStore](primary, &memStore{kind: "memory"}))
	fmt.Println(err)

	// Output: container.invalid_binding: adapter built for port "primary" cannot be bound to port "replica"
}

func ExampleOverride() {
	c := New(Registry(registry.New()))

	port := NewPort[testStore]("store")
	if err := Bind(c, port, Adapt[testStore](port, &memStore{kind: "memory"})); err != nil {
		fmt.Println(err)
		return
	}
	if err := Override(c, port, Adapt[testStore](port, &memStore{kind: "disk"})); err != nil {
		fmt.Println(err)
		return
	}

	kind := Provide(func(ctx context.Context, deps Deps) (string, error) {
		return MustDep[testStore](deps, "store").Kind(), nil
	}).Use("store", port)

	if err := c.Import("kind", kind); err != nil {
		fmt.Println(err)
		return
	}
	if err := c.Build(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	v, err := Resolve[string](c, "kind")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(v)
	// Output: disk
}

func ExampleContainer_Close() {
	c := New(Registry(registry.New()))

	db := Provide(func(ctx context.Context, deps Deps) (*memStore, error) {
		if lc, ok := lifecycle.FromContext(ctx); ok {
			lc.OnClose(lifecycle.HookFunc(func(context.Context) error {
				fmt.Println("close database")
				return nil
			}))
		}
		return &memStore{kind: "memory"}, nil
	})

	svc := Provide(func(ctx context.Context, deps Deps) (*testService, error) {
		if lc, ok := lifecycle.FromContext(ctx); ok {
			lc.OnClose(lifecycle.HookFunc(func(context.Context) error {
				fmt.Println("close service")
				return nil
			}))
		}
		return &testService{}, nil
	}).Use("db", db)

	if err := c.Import("service", svc); err != nil {
		fmt.Println(err)
		return
	}
	if err := c.Build(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	if err := c.Close(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	// Output:
	// close service
	// close database
}
