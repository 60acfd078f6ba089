// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/scene"
)

// Kind is a component type that can be added or removed from the
// properties panel.
type Kind int32

const (
	KindTransform Kind = iota
	KindModel
	KindMaterial
	KindCamera
)

var kindNames = [...]string{"Transform", "Model", "Material", "Camera"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// Kinds returns all the component kinds, in panel order.
func Kinds() []Kind {
	return []Kind{KindTransform, KindModel, KindMaterial, KindCamera}
}

// ErrUnknownKind is returned for a [Kind] outside the known set.
var ErrUnknownKind = errors.New("editor: unknown component kind")

// Has returns whether e has a component of the given kind.
func (ed *Editor) Has(e scene.Entity, k Kind) bool {
	switch k {
	case KindTransform:
		return scene.HasComponent[scene.Transform](ed.sc, e)
	case KindModel:
		return scene.HasComponent[scene.Model](ed.sc, e)
	case KindMaterial:
		return scene.HasComponent[scene.Material](ed.sc, e)
	case KindCamera:
		return scene.HasComponent[scene.Camera](ed.sc, e)
	}
	return false
}

// Rename renames e. Names must be non-empty and unique.
func (ed *Editor) Rename(e scene.Entity, name string) error {
	if name == "" {
		return errors.New("editor: entity name must not be empty")
	}
	return ed.sc.Rename(e, name)
}

// SetTransform sets the transform of e, adding one if needed. The view
// of a camera on e follows the new transform.
func (ed *Editor) SetTransform(e scene.Entity, t scene.Transform) error {
	if !ed.sc.Valid(e) {
		return scene.ErrInvalidEntity
	}
	p := scene.AddComponent(ed.sc, e, t)
	*p = t
	if cam, err := scene.GetComponent[scene.Camera](ed.sc, e); err == nil {
		cam.UpdateView(t)
	}
	return nil
}

// AddComponent queues adding a default component of the given kind to
// e. An existing component is kept unchanged.
func (ed *Editor) AddComponent(e scene.Entity, k Kind) error {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	ed.Commands.Push(func(sc *scene.Scene) {
		if !sc.Valid(e) {
			return
		}
		switch k {
		case KindTransform:
			scene.AddComponent(sc, e, scene.NewTransform())
		case KindModel:
			scene.AddComponent(sc, e, scene.Model{})
		case KindMaterial:
			scene.AddComponent(sc, e, scene.DefaultMaterial(sc.Assets()))
		case KindCamera:
			cam := scene.AddComponent(sc, e, scene.NewCamera(false))
			if tr, err := scene.GetComponent[scene.Transform](sc, e); err == nil {
				cam.UpdateView(*tr)
			}
		}
	})
	return nil
}

// RemoveComponent queues removing the component of the given kind from e.
func (ed *Editor) RemoveComponent(e scene.Entity, k Kind) error {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	ed.Commands.Push(func(sc *scene.Scene) {
		switch k {
		case KindTransform:
			scene.RemoveComponent[scene.Transform](sc, e)
		case KindModel:
			scene.RemoveComponent[scene.Model](sc, e)
		case KindMaterial:
			scene.RemoveComponent[scene.Material](sc, e)
		case KindCamera:
			scene.RemoveComponent[scene.Camera](sc, e)
		}
	})
	return nil
}

// LoadModel replaces the model of e with the one in file. On error the
// old model is kept.
func (ed *Editor) LoadModel(e scene.Entity, file string) error {
	if !ed.sc.Valid(e) {
		return scene.ErrInvalidEntity
	}
	m, err := scene.LoadModel(ed.sc.Assets(), file)
	if err != nil {
		return err
	}
	return ed.sc.SetModel(e, m)
}

// LoadAlbedo sets the albedo texture of e from file. An empty file
// selects the default texture. A file that cannot be loaded is logged
// and returned as an error, leaving the material unchanged.
func (ed *Editor) LoadAlbedo(e scene.Entity, file string) error {
	if !ed.sc.Valid(e) {
		return scene.ErrInvalidEntity
	}
	tx, err := ed.sc.Assets().Texture(file)
	if err != nil {
		slog.Warn("could not load albedo texture", "entity", ed.sc.EntityName(e), "path", file, "err", err)
		return err
	}
	return ed.sc.SetAlbedo(e, tx)
}

// SetPrimary makes the camera on e the primary camera, clearing the
// flag on every other camera.
func (ed *Editor) SetPrimary(e scene.Entity) error {
	if _, err := scene.GetComponent[scene.Camera](ed.sc, e); err != nil {
		return err
	}
	for _, ce := range scene.EntitiesWith[scene.Camera](ed.sc) {
		scene.MustGet[scene.Camera](ed.sc, ce).Primary = ce == e
	}
	return nil
}
