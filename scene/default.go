// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/openrenderer/assets"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultSceneName is the name of the scene made by [NewDefault].
	DefaultSceneName = "Default Scene"

	// DefaultCameraName is the name of the camera entity made by [NewDefault].
	DefaultCameraName = "DefaultCamera"
)

// DefaultCameraTransform is where the default camera is placed.
var DefaultCameraTransform = Transform{
	Position: mgl32.Vec3{0, 2, 5},
	Scale:    mgl32.Vec3{1, 1, 1},
}

// NewDefault returns the scene used when no scene file can be loaded:
// a single primary camera named "DefaultCamera".
func NewDefault(reg *assets.Registry) *Scene {
	sc := New(DefaultSceneName, reg)
	AddDefaultCamera(sc)
	return sc
}

// AddDefaultCamera adds a primary camera entity named "DefaultCamera"
// at the default position. It returns [Null] if the name is taken.
func AddDefaultCamera(sc *Scene) Entity {
	e := sc.CreateEntity(DefaultCameraName)
	if e == Null {
		return Null
	}
	t := AddComponent(sc, e, DefaultCameraTransform)
	cam := AddComponent(sc, e, NewCamera(true))
	cam.UpdateView(*t)
	return e
}
