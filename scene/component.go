// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"log/slog"

	"cogentcore.org/openrenderer/assets"
	"cogentcore.org/openrenderer/ecs"
)

// column returns the storage for component type T.
func column[T Component](sc *Scene) *ecs.Column[T] {
	var z T
	switch any(z).(type) {
	case Name:
		return any(sc.names).(*ecs.Column[T])
	case Active:
		return any(sc.actives).(*ecs.Column[T])
	case Transform:
		return any(sc.transforms).(*ecs.Column[T])
	case Model:
		return any(sc.models).(*ecs.Column[T])
	case Material:
		return any(sc.materials).(*ecs.Column[T])
	case Camera:
		return any(sc.cameras).(*ecs.Column[T])
	}
	panic("unreachable")
}

// AddComponent attaches v to e and returns the stored value. If e already
// has a T, the existing value is returned unchanged and any assets held
// by v are released. It returns nil (and logs) if e is not valid, or if
// v is a Name already used by another entity.
func AddComponent[T Component](sc *Scene, e Entity, v T) *T {
	if !sc.Valid(e) {
		slog.Error("AddComponent on invalid entity", "entity", e, "component", fmt.Sprintf("%T", v))
		sc.releaseValue(&v)
		return nil
	}
	if n, ok := any(v).(Name); ok && !sc.names.Has(e) {
		if other := sc.GetEntity(n.Name); other != Null && other != e {
			slog.Warn("entity name already in use", "scene", sc.name, "name", n.Name)
			return nil
		}
	}
	p, added := column[T](sc).GetOrAdd(e, v)
	if !added {
		sc.releaseValue(&v)
	}
	return p
}

// releaseValue gives back the asset references carried by a component
// value that was not stored.
func (sc *Scene) releaseValue(v any) {
	switch c := v.(type) {
	case *Model:
		sc.releaseModel(c)
	case *Material:
		sc.releaseMaterial(c)
	}
}

// GetComponent returns the T attached to e. The pointer stays valid
// until the component is removed or the entity deleted.
func GetComponent[T Component](sc *Scene, e Entity) (*T, error) {
	if !sc.Valid(e) {
		return nil, ErrInvalidEntity
	}
	p, ok := column[T](sc).Get(e)
	if !ok {
		var z T
		return nil, fmt.Errorf("%w: %T on %v", ErrMissingComponent, z, e)
	}
	return p, nil
}

// MustGet is like [GetComponent] but panics on error. It is for callers
// that have already checked with [HasComponent].
func MustGet[T Component](sc *Scene, e Entity) *T {
	p, err := GetComponent[T](sc, e)
	if err != nil {
		panic(err)
	}
	return p
}

// HasComponent returns whether e is live and has a T.
func HasComponent[T Component](sc *Scene, e Entity) bool {
	return sc.Valid(e) && column[T](sc).Has(e)
}

// RemoveComponent removes the T from e, releasing any assets it holds.
// It does nothing if there is none.
func RemoveComponent[T Component](sc *Scene, e Entity) {
	if !sc.Valid(e) {
		return
	}
	column[T](sc).Remove(e)
}

// EntitiesWith returns the entities that have a T, in the order the
// components were attached. The result is a snapshot.
func EntitiesWith[T Component](sc *Scene) []Entity {
	return column[T](sc).Entities()
}

// SetModel sets the Model of e to m in place, keeping its attachment
// order, and releases the assets held by the old value. The model is
// added if e has none.
func (sc *Scene) SetModel(e Entity, m Model) error {
	if !sc.Valid(e) {
		sc.releaseModel(&m)
		return ErrInvalidEntity
	}
	p, added := sc.models.GetOrAdd(e, m)
	if added {
		return nil
	}
	sc.releaseModel(p)
	*p = m
	return nil
}

// SetAlbedo sets the albedo texture of the Material of e, releasing the
// old texture. The reference held on tx passes to the material. The
// default material is added if e has none.
func (sc *Scene) SetAlbedo(e Entity, tx *assets.Texture) error {
	if !sc.Valid(e) {
		sc.assets.Release(tx)
		return ErrInvalidEntity
	}
	if tx == nil {
		tx = sc.assets.DefaultTexture()
	}
	p, _ := sc.materials.GetOrAdd(e, DefaultMaterial(sc.assets))
	old := p.Albedo
	p.Albedo = tx
	p.AlbedoFile = tx.Path
	p.Name = tx.Name
	sc.assets.Release(old)
	return nil
}
