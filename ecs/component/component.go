// Package component holds the plain data attached to entities.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a component store inside a World. IDs start at 1.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key used by ecs.Add, ecs.Get and friends. The
// type parameter ties the key to the value stored under it.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind allocates a fresh ID. Safe for concurrent use.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

// Valid is false for the zero kind, which no store accepts.
func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is declared once per component type at package level, e.g.
// TransformComponent, and handed to the ecs helpers through Kind.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
