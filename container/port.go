// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package container

import (
	"github.com/binaryshapes/mixor/internal/typeshape"
)

// Port is a named slot for a dependency of type T that the graph
// expects to be supplied from outside, through an [Adapter].
//
// Port identity is the instance itself: two ports created with the
// same name and type are still distinct slots, and an adapter built
// for one cannot be bound to the other.
type Port[T any] struct {
	name  string
	shape string
}

// NewPort returns a new dependency slot for values of type T.
func NewPort[T any](name string) *Port[T] {
	return &Port[T]{
		name:  name,
		shape: typeshape.Static[T](),
	}
}

// Name returns the name the port was created with.
func (p *Port[T]) Name() string { return p.name }

// Shape returns the string form of the port's value type.
func (p *Port[T]) Shape() string { return p.shape }

func (p *Port[T]) isPort() {}

// portRef is satisfied by every [Port] regardless of its type
// parameter, so the container can treat ports uniformly.
type portRef interface {
	Name() string
	Shape() string
	isPort()
}

// Adapter carries the concrete implementation for the port it was
// built with.
type Adapter[T any] struct {
	port *Port[T]
	impl T
}

// Adapt builds an adapter supplying impl for port. The adapter can
// only ever be bound to that exact port.
func Adapt[T any](port *Port[T], impl T) *Adapter[T] {
	if port == nil {
		panic("container: nil port")
	}
	return &Adapter[T]{
		port: port,
		impl: impl,
	}
}
