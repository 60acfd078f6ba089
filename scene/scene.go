// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is the editor's scene model: a named set of entities,
// each carrying a subset of the [Component] types, plus the transform
// and camera math the renderer and editor need.
//
// A Scene is single-threaded. Structural edits made while iterating
// (for example from UI code drawing a list of entities) should go
// through a [Commands] queue and be applied between frames.
package scene

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/assets"
	"cogentcore.org/openrenderer/ecs"
)

// Entity is a handle to an entity in a scene. [Null] is never live.
type Entity = ecs.Entity

// Null is the invalid entity handle.
var Null = ecs.Null

var (
	// ErrInvalidEntity is returned for operations on an entity that
	// does not exist or has been deleted.
	ErrInvalidEntity = errors.New("scene: invalid entity")

	// ErrMissingComponent is returned when an entity lacks the requested component.
	ErrMissingComponent = errors.New("scene: missing component")

	// ErrDuplicateName is returned when a name is already used by another entity.
	ErrDuplicateName = errors.New("scene: duplicate entity name")
)

// Scene is a named collection of entities and their components.
type Scene struct {
	name   string
	assets *assets.Registry

	reg        *ecs.Registry
	names      *ecs.Column[Name]
	actives    *ecs.Column[Active]
	transforms *ecs.Column[Transform]
	models     *ecs.Column[Model]
	materials  *ecs.Column[Material]
	cameras    *ecs.Column[Camera]
}

// New returns a new empty scene using the given asset registry.
func New(name string, reg *assets.Registry) *Scene {
	sc := &Scene{name: name, assets: reg, reg: ecs.NewRegistry()}
	sc.names = ecs.NewColumn[Name](sc.reg)
	sc.actives = ecs.NewColumn[Active](sc.reg)
	sc.transforms = ecs.NewColumn[Transform](sc.reg)
	sc.models = ecs.NewColumn[Model](sc.reg)
	sc.materials = ecs.NewColumn[Material](sc.reg)
	sc.cameras = ecs.NewColumn[Camera](sc.reg)
	sc.models.Release = func(e Entity, m *Model) { sc.releaseModel(m) }
	sc.materials.Release = func(e Entity, m *Material) { sc.releaseMaterial(m) }
	return sc
}

func (sc *Scene) releaseModel(m *Model) {
	if m.held && sc.assets != nil {
		sc.assets.ReleaseMeshes(m.File)
	}
	m.held = false
	m.Meshes = nil
}

func (sc *Scene) releaseMaterial(m *Material) {
	if sc.assets != nil {
		sc.assets.Release(m.Albedo)
	}
	m.Albedo = nil
}

// Name returns the scene name.
func (sc *Scene) Name() string {
	return sc.name
}

// SetName sets the scene name.
func (sc *Scene) SetName(name string) {
	sc.name = name
}

// Assets returns the asset registry the scene loads through.
func (sc *Scene) Assets() *assets.Registry {
	return sc.assets
}

// Len returns the number of live entities.
func (sc *Scene) Len() int {
	return sc.reg.Len()
}

// Valid returns whether e is a live entity in this scene.
func (sc *Scene) Valid(e Entity) bool {
	return sc.reg.Valid(e)
}

// Entities returns the live entities in creation order.
func (sc *Scene) Entities() []Entity {
	return sc.reg.Entities()
}

// CreateEntity creates an entity with the given name, which starts
// active. If a live entity already has that name it logs a warning and
// returns [Null], leaving the scene unchanged.
func (sc *Scene) CreateEntity(name string) Entity {
	if sc.GetEntity(name) != Null {
		slog.Warn("entity name already in use", "scene", sc.name, "name", name)
		return Null
	}
	e := sc.reg.Create()
	sc.names.GetOrAdd(e, Name{Name: name})
	sc.actives.GetOrAdd(e, Active{On: true})
	return e
}

// GetEntity returns the entity with the given name, or [Null].
func (sc *Scene) GetEntity(name string) Entity {
	found := Null
	sc.names.Each(func(e Entity, n *Name) bool {
		if n.Name == name {
			found = e
			return false
		}
		return true
	})
	return found
}

// EntityName returns the name of e, or "" if it has none.
func (sc *Scene) EntityName(e Entity) string {
	if n, ok := sc.names.Get(e); ok {
		return n.Name
	}
	return ""
}

// Rename changes the name of e, keeping names unique.
func (sc *Scene) Rename(e Entity, name string) error {
	if !sc.Valid(e) {
		return ErrInvalidEntity
	}
	if other := sc.GetEntity(name); other != Null && other != e {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	n, _ := sc.names.GetOrAdd(e, Name{})
	n.Name = name
	return nil
}

// DeleteEntity destroys e and all of its components, releasing any
// assets they hold. Deleting an invalid entity does nothing.
func (sc *Scene) DeleteEntity(e Entity) {
	sc.reg.Destroy(e)
}

// IsActive returns whether e is active. Entities without an
// [Active] component are treated as active.
func (sc *Scene) IsActive(e Entity) bool {
	if !sc.Valid(e) {
		return false
	}
	if a, ok := sc.actives.Get(e); ok {
		return a.On
	}
	return true
}

// SetActive sets whether e is active.
func (sc *Scene) SetActive(e Entity, on bool) {
	if a := AddComponent(sc, e, Active{}); a != nil {
		a.On = on
	}
}

// GetPrimaryCamera returns the first entity, in camera attachment
// order, whose camera is primary, or [Null] if there is none.
func (sc *Scene) GetPrimaryCamera() Entity {
	found := Null
	sc.cameras.Each(func(e Entity, c *Camera) bool {
		if c.Primary {
			found = e
			return false
		}
		return true
	})
	return found
}

// UniqueName returns base if no entity has that name, otherwise the
// first of "base (1)", "base (2)", ... that is free.
func (sc *Scene) UniqueName(base string) string {
	if sc.GetEntity(base) == Null {
		return base
	}
	for i := 1; ; i++ {
		nm := fmt.Sprintf("%s (%d)", base, i)
		if sc.GetEntity(nm) == Null {
			return nm
		}
	}
}

// Duplicate makes a copy of e and all of its components, named from
// "<name> (copy)". Assets are shared between the two. The copy's camera
// is never primary. It returns [Null] if e is not valid.
func (sc *Scene) Duplicate(e Entity) Entity {
	if !sc.Valid(e) {
		return Null
	}
	d := sc.reg.Create()
	sc.names.GetOrAdd(d, Name{Name: sc.UniqueName(sc.EntityName(e) + " (copy)")})
	if a, ok := sc.actives.Get(e); ok {
		sc.actives.GetOrAdd(d, *a)
	}
	if t, ok := sc.transforms.Get(e); ok {
		sc.transforms.GetOrAdd(d, *t)
	}
	if m, ok := sc.models.Get(e); ok {
		if m.held && sc.assets != nil {
			sc.assets.RetainMeshes(m.File)
		}
		sc.models.GetOrAdd(d, *m)
	}
	if m, ok := sc.materials.Get(e); ok {
		if sc.assets != nil {
			sc.assets.Retain(m.Albedo)
		}
		sc.materials.GetOrAdd(d, *m)
	}
	if c, ok := sc.cameras.Get(e); ok {
		cc := *c
		cc.Primary = false
		sc.cameras.GetOrAdd(d, cc)
	}
	return d
}

// Clear deletes every entity, releasing their assets.
func (sc *Scene) Clear() {
	sc.reg.Clear()
}
