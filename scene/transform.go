// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the placement of an entity in the world.
// Rotation is Euler angles in degrees, applied X then Y then Z in the
// entity's local frame.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewTransform returns the identity transform, with unit scale.
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// rotation returns Rx * Ry * Rz for the Euler angles.
func (t *Transform) rotation() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation[0]))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation[1]))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation[2]))
	return rx.Mul4(ry).Mul4(rz)
}

// Matrix returns the model matrix T * Rx * Ry * Rz * S.
func (t *Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	sc := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.rotation()).Mul4(sc)
}

// RigidMatrix returns T * Rx * Ry * Rz, ignoring scale.
func (t *Transform) RigidMatrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	return tr.Mul4(t.rotation())
}

// Decompose sets the transform from a matrix made of translation,
// XYZ rotation and positive scale, as returned by [Transform.Matrix].
// Shear is discarded.
func (t *Transform) Decompose(m mgl32.Mat4) {
	t.Position = m.Col(3).Vec3()
	c0, c1, c2 := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	t.Scale = mgl32.Vec3{c0.Len(), c1.Len(), c2.Len()}
	for i, s := range t.Scale {
		if s == 0 {
			t.Scale[i] = 1
		}
	}
	c0, c1, c2 = c0.Mul(1/t.Scale[0]), c1.Mul(1/t.Scale[1]), c2.Mul(1/t.Scale[2])

	// r is Rx * Ry * Rz; rij is row i column j.
	r02 := c2[0]
	sy := math32.Max(-1, math32.Min(1, r02))
	var x, y, z float32
	y = math32.Asin(sy)
	if math32.Abs(sy) < 0.99999 {
		x = math32.Atan2(-c2[1], c2[2])
		z = math32.Atan2(-c1[0], c0[0])
	} else {
		// gimbal lock: only x + z (or x - z) is determined
		x = math32.Atan2(c1[2], c1[1])
		z = 0
	}
	t.Rotation = mgl32.Vec3{mgl32.RadToDeg(x), mgl32.RadToDeg(y), mgl32.RadToDeg(z)}
}
