// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import "cogentcore.org/core/base/ordmap"

// Column stores the components of one type, keyed by entity, in the
// order they were attached. Values are heap allocated so pointers
// returned by [Column.Get] stay valid until the component is removed.
type Column[T any] struct {

	// Release, if set, is called with each value as it is removed.
	Release func(e Entity, v *T)

	data *ordmap.Map[Entity, *T]
}

// NewColumn returns a new column attached to the given registry.
func NewColumn[T any](r *Registry) *Column[T] {
	c := &Column[T]{data: ordmap.New[Entity, *T]()}
	if r != nil {
		r.Attach(c)
	}
	return c
}

// Has returns whether e has a value in the column.
func (c *Column[T]) Has(e Entity) bool {
	_, ok := c.data.Map[e]
	return ok
}

// Get returns the value for e, if any.
func (c *Column[T]) Get(e Entity) (*T, bool) {
	return c.data.ValueByKeyTry(e)
}

// GetOrAdd returns the existing value for e unchanged, or adds a copy
// of v and returns it. added is true when v was added.
func (c *Column[T]) GetOrAdd(e Entity, v T) (val *T, added bool) {
	if p, ok := c.data.ValueByKeyTry(e); ok {
		return p, false
	}
	p := new(T)
	*p = v
	c.data.Add(e, p)
	return p, true
}

// Remove removes the value for e, calling Release on it.
// It returns false if there was none.
func (c *Column[T]) Remove(e Entity) bool {
	p, ok := c.data.ValueByKeyTry(e)
	if !ok {
		return false
	}
	c.data.DeleteKey(e)
	if c.Release != nil {
		c.Release(e, p)
	}
	return true
}

// Reset removes every value, calling Release on each in order.
func (c *Column[T]) Reset() {
	order := c.data.Order
	c.data.Reset()
	c.data.Init()
	if c.Release == nil {
		return
	}
	for _, kv := range order {
		c.Release(kv.Key, kv.Value)
	}
}

// Len returns the number of values.
func (c *Column[T]) Len() int {
	return c.data.Len()
}

// Entities returns the entities with a value, in attachment order.
// The returned slice is a copy and can be held across mutations.
func (c *Column[T]) Entities() []Entity {
	return c.data.Keys()
}

// Each calls fun for every value in attachment order, stopping when
// it returns false. The column must not be changed during iteration.
func (c *Column[T]) Each(fun func(e Entity, v *T) bool) {
	for _, kv := range c.data.Order {
		if !fun(kv.Key, kv.Value) {
			return
		}
	}
}
