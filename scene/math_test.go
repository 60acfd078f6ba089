// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, tol), "want %v got %v", want, got)
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	assert.True(t, tr.Matrix().ApproxEqual(mgl32.Ident4()))

	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec(t, mgl32.Vec3{3, 2, 3}, p)

	tr = NewTransform()
	tr.Rotation = mgl32.Vec3{0, 90, 0}
	p = tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec(t, mgl32.Vec3{0, 0, -1}, p)
}

func TestTransformDecompose(t *testing.T) {
	cases := []Transform{
		NewTransform(),
		{Position: mgl32.Vec3{1, -2, 3}, Rotation: mgl32.Vec3{10, 20, 30}, Scale: mgl32.Vec3{1, 2, 3}},
		{Position: mgl32.Vec3{0, 5, 0}, Rotation: mgl32.Vec3{-45, 60, 170}, Scale: mgl32.Vec3{0.5, 0.5, 0.5}},
	}
	for _, want := range cases {
		var got Transform
		got.Decompose(want.Matrix())
		assertVec(t, want.Position, got.Position)
		assertVec(t, want.Scale, got.Scale)
		assert.True(t, want.Matrix().ApproxEqualThreshold(got.Matrix(), tol))
	}

	// gimbal lock still reproduces the matrix
	lock := Transform{Rotation: mgl32.Vec3{30, 90, 0}, Scale: mgl32.Vec3{1, 1, 1}}
	var got Transform
	got.Decompose(lock.Matrix())
	assert.True(t, lock.Matrix().ApproxEqualThreshold(got.Matrix(), tol))
}

func TestCamera(t *testing.T) {
	cam := NewCamera(true)
	assert.Equal(t, float32(DefaultFOV), cam.FOV)
	assert.Equal(t, float32(DefaultNear), cam.Near)
	assert.Equal(t, float32(DefaultFar), cam.Far)

	tr := Transform{Position: mgl32.Vec3{0, 2, 5}, Scale: mgl32.Vec3{3, 3, 3}}
	cam.UpdateView(tr)
	// the camera position maps to the view space origin, ignoring scale
	o := cam.View.Mul4x1(mgl32.Vec4{0, 2, 5, 1}).Vec3()
	assertVec(t, mgl32.Vec3{}, o)
	fwd := cam.View.Mul4x1(mgl32.Vec4{0, 2, 4, 1}).Vec3()
	assertVec(t, mgl32.Vec3{0, 0, -1}, fwd)

	cam.Reset(800, 400)
	assert.Equal(t, float32(2), cam.Aspect)
	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100)
	assert.True(t, want.ApproxEqual(cam.Projection))
	cam.Reset(800, 0)
	assert.Equal(t, float32(2), cam.Aspect)
}

func TestModelAndMaterialHelpers(t *testing.T) {
	assert.Equal(t, "", (&Model{}).Name())
	assert.Equal(t, "box.obj", (&Model{File: "models/box.obj"}).Name())
	var m Material
	assert.Equal(t, "", m.AlbedoPath())
	assert.Equal(t, "", m.ShaderName())
}
