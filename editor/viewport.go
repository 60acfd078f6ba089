// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"cogentcore.org/openrenderer/render"
	"cogentcore.org/openrenderer/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the scene view: an offscreen target the scene is drawn
// into, shown by the UI as an image.
type Viewport struct {
	Target *render.Target
}

// NewViewport makes the viewport target of the editor with the given
// size, and fits the primary camera to it.
func (ed *Editor) NewViewport(r *render.Renderer, width, height int) error {
	tg, err := render.NewTarget(r.Device(), width, height)
	if err != nil {
		return err
	}
	if ed.Viewport != nil && ed.Viewport.Target != nil {
		ed.Viewport.Target.Close()
	}
	ed.Viewport = &Viewport{Target: tg}
	ed.resetCamera(width, height)
	return nil
}

// Resize fits the viewport and the primary camera to a new size.
// Sizes that are not positive are ignored.
func (ed *Editor) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	ed.resetCamera(width, height)
	if ed.Viewport == nil || ed.Viewport.Target == nil {
		return nil
	}
	return ed.Viewport.Target.Resize(width, height)
}

func (ed *Editor) resetCamera(width, height int) {
	if e := ed.Camera(); e != scene.Null {
		scene.MustGet[scene.Camera](ed.sc, e).Reset(width, height)
	}
}

// ApplyGizmo sets the transform of e from a manipulated model matrix.
// It only applies to entities that have both a Model and a Transform,
// and reports whether it did.
func (ed *Editor) ApplyGizmo(e scene.Entity, m mgl32.Mat4) bool {
	if !scene.HasComponent[scene.Model](ed.sc, e) || !scene.HasComponent[scene.Transform](ed.sc, e) {
		return false
	}
	scene.MustGet[scene.Transform](ed.sc, e).Decompose(m)
	return true
}

// Close stops the watcher and frees the viewport target.
func (ed *Editor) Close() {
	if ed.watcher != nil {
		ed.watcher.Close()
		ed.watcher = nil
	}
	if ed.Viewport != nil && ed.Viewport.Target != nil {
		ed.Viewport.Target.Close()
		ed.Viewport = nil
	}
}
