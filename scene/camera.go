// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera defaults.
const (
	DefaultFOV  = 45
	DefaultNear = 0.1
	DefaultFar  = 100
)

// Camera is a perspective camera. View and Projection are cached
// matrices: View is only updated by [Camera.UpdateView], and
// Projection by [Camera.Reset].
type Camera struct {

	// Primary marks the camera used to render the scene.
	Primary bool

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Near and Far are the clipping plane distances.
	Near, Far float32

	// Aspect is the width / height ratio.
	Aspect float32

	// View is the inverse of the camera placement.
	View mgl32.Mat4

	// Projection is the perspective projection.
	Projection mgl32.Mat4
}

// NewCamera returns a camera with default lens settings and a 16:9 aspect.
func NewCamera(primary bool) Camera {
	c := Camera{
		Primary: primary,
		FOV:     DefaultFOV,
		Near:    DefaultNear,
		Far:     DefaultFar,
		Aspect:  16.0 / 9.0,
		View:    mgl32.Ident4(),
	}
	c.updateProjection()
	return c
}

func (c *Camera) updateProjection() {
	if c.FOV == 0 {
		c.FOV = DefaultFOV
	}
	if c.Near == 0 {
		c.Near = DefaultNear
	}
	if c.Far == 0 {
		c.Far = DefaultFar
	}
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// UpdateView sets View to the inverse of the given transform, ignoring
// its scale.
func (c *Camera) UpdateView(t Transform) {
	c.View = t.RigidMatrix().Inv()
}

// Reset sets the aspect ratio for a viewport of the given size and
// recomputes the projection. A zero height is ignored.
func (c *Camera) Reset(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
	c.updateProjection()
}
