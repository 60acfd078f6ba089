// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ecs provides the entity handles and per-type component
// storage that a [scene.Scene] is built on.
//
// Entities are generational handles: destroying an entity bumps the
// generation of its slot, so any copy of the old handle is detectably
// stale. Components of one type are kept in a [Column], which preserves
// attachment order and hands out stable pointers.
package ecs

import "fmt"

// Entity is an opaque handle to an entity in a [Registry].
// The zero value is [Null].
type Entity struct {
	// Index is the slot in the registry.
	Index uint32

	// Gen is the generation of the slot when the handle was made.
	// Live generations start at 1.
	Gen uint32
}

// Null is the invalid entity handle.
var Null = Entity{}

// IsNull returns whether the handle is [Null].
func (e Entity) IsNull() bool {
	return e.Gen == 0
}

func (e Entity) String() string {
	if e.IsNull() {
		return "Entity(null)"
	}
	return fmt.Sprintf("Entity(%d.%d)", e.Index, e.Gen)
}
