// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecs

// Registry allocates entity handles and tracks which are live.
// Columns attached with [Attach] are cleared of an entity when it
// is destroyed. A Registry is not safe for concurrent use.
type Registry struct {

	// gens has the current generation of every slot. A slot is live
	// when its generation matches and it is not on the free list.
	gens []uint32

	// alive marks live slots.
	alive []bool

	// free is the list of reusable slots.
	free []uint32

	// order is the live entities in creation order.
	order []Entity

	columns []remover
}

// remover is the part of a [Column] the registry needs.
type remover interface {
	Remove(e Entity) bool
	Reset()
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Attach registers a column so that it is cleared of destroyed entities.
func (r *Registry) Attach(c remover) {
	r.columns = append(r.columns, c)
}

// Create returns a new live entity.
func (r *Registry) Create() Entity {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.gens))
		r.gens = append(r.gens, 0)
		r.alive = append(r.alive, false)
	}
	r.gens[idx]++
	if r.gens[idx] == 0 { // wrapped
		r.gens[idx] = 1
	}
	r.alive[idx] = true
	e := Entity{Index: idx, Gen: r.gens[idx]}
	r.order = append(r.order, e)
	return e
}

// Valid returns whether e refers to a live entity.
func (r *Registry) Valid(e Entity) bool {
	if e.IsNull() || int(e.Index) >= len(r.gens) {
		return false
	}
	return r.alive[e.Index] && r.gens[e.Index] == e.Gen
}

// Destroy removes the entity and all of its components from the
// attached columns. It returns false if e was not live.
func (r *Registry) Destroy(e Entity) bool {
	if !r.Valid(e) {
		return false
	}
	for _, c := range r.columns {
		c.Remove(e)
	}
	r.alive[e.Index] = false
	r.free = append(r.free, e.Index)
	for i, o := range r.order {
		if o == e {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.order)
}

// Entities returns the live entities in creation order.
// The returned slice is a copy.
func (r *Registry) Entities() []Entity {
	return append([]Entity(nil), r.order...)
}

// Clear destroys every entity, clearing all attached columns.
// Generations are kept so that old handles stay invalid.
func (r *Registry) Clear() {
	for _, c := range r.columns {
		c.Reset()
	}
	for _, e := range r.order {
		r.alive[e.Index] = false
		r.free = append(r.free, e.Index)
	}
	r.order = nil
}
