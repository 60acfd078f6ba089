// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Valid(Null))
	a := r.Create()
	b := r.Create()
	assert.False(t, a.IsNull())
	assert.NotEqual(t, a, b)
	assert.True(t, r.Valid(a))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []Entity{a, b}, r.Entities())

	assert.True(t, r.Destroy(a))
	assert.False(t, r.Destroy(a))
	assert.False(t, r.Valid(a))
	assert.Equal(t, []Entity{b}, r.Entities())

	c := r.Create()
	assert.Equal(t, a.Index, c.Index)
	assert.NotEqual(t, a.Gen, c.Gen)
	assert.False(t, r.Valid(a))
	assert.True(t, r.Valid(c))
	assert.False(t, r.Valid(Entity{Index: 99, Gen: 1}))
}

type pos struct{ X, Y float32 }

func TestColumn(t *testing.T) {
	r := NewRegistry()
	c := NewColumn[pos](r)
	var released []Entity
	c.Release = func(e Entity, v *pos) { released = append(released, e) }

	a, b := r.Create(), r.Create()
	assert.False(t, c.Has(Null))
	assert.False(t, c.Has(a))

	p, added := c.GetOrAdd(b, pos{1, 2})
	assert.True(t, added)
	q, added := c.GetOrAdd(b, pos{3, 4})
	assert.False(t, added)
	assert.Same(t, p, q)
	assert.Equal(t, pos{1, 2}, *q)

	c.GetOrAdd(a, pos{5, 6})
	assert.Equal(t, []Entity{b, a}, c.Entities())

	p.X = 10
	g, ok := c.Get(b)
	assert.True(t, ok)
	assert.Equal(t, float32(10), g.X)

	assert.False(t, c.Remove(r.Create()))
	r.Destroy(b)
	assert.False(t, c.Has(b))
	assert.Equal(t, []Entity{b}, released)
	assert.Equal(t, 1, c.Len())

	n := 0
	c.Each(func(e Entity, v *pos) bool {
		n++
		return true
	})
	assert.Equal(t, 1, n)

	r.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []Entity{b, a}, released)
	assert.False(t, r.Valid(a))
	assert.Equal(t, 0, r.Len())
}
