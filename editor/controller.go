// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"cogentcore.org/openrenderer/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpeed is the default camera movement per frame.
const DefaultSpeed = 0.2

// Key is a camera movement key.
type Key int32

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Input reports which movement keys are held.
type Input interface {
	KeyDown(k Key) bool
}

// CameraController flies a camera with WASD for forward, left, back and
// right, and E and Q for up and down, all in the camera's own frame.
type CameraController struct {

	// Speed is the distance moved per update.
	Speed float32
}

var moves = []struct {
	key Key
	dir mgl32.Vec3
}{
	{KeyForward, mgl32.Vec3{0, 0, -1}},
	{KeyBack, mgl32.Vec3{0, 0, 1}},
	{KeyLeft, mgl32.Vec3{-1, 0, 0}},
	{KeyRight, mgl32.Vec3{1, 0, 0}},
	{KeyUp, mgl32.Vec3{0, 1, 0}},
	{KeyDown, mgl32.Vec3{0, -1, 0}},
}

// Update moves t for the held keys and updates the view of cam.
// It returns whether it moved.
func (cc *CameraController) Update(in Input, t *scene.Transform, cam *scene.Camera) bool {
	var d mgl32.Vec3
	for _, m := range moves {
		if in.KeyDown(m.key) {
			d = d.Add(m.dir)
		}
	}
	if d.Len() == 0 {
		return false
	}
	rot := t.RigidMatrix().Mat3()
	t.Position = t.Position.Add(rot.Mul3x1(d).Mul(cc.Speed))
	cam.UpdateView(*t)
	return true
}

// MoveCamera moves the primary camera of the editor for the held keys.
func (ed *Editor) MoveCamera(in Input) bool {
	e := ed.Camera()
	if e == scene.Null {
		return false
	}
	t, err := scene.GetComponent[scene.Transform](ed.sc, e)
	if err != nil {
		return false
	}
	return ed.Controller.Update(in, t, scene.MustGet[scene.Camera](ed.sc, e))
}
