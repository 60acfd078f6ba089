// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package editor is the editing layer between a UI and the scene model.
// It keeps the open scene, the selection, and the file state, and
// exposes the operations of the hierarchy, properties and viewport
// panels. Structural edits are queued on [Editor.Commands] and applied
// by [Editor.Frame] after the scene has been drawn.
package editor

import (
	"log/slog"

	"cogentcore.org/openrenderer/render"
	"cogentcore.org/openrenderer/scene"
	"cogentcore.org/openrenderer/scenefile"
)

// Editor is the state of one editing session.
type Editor struct {

	// Commands has the structural edits to apply at the end of the frame.
	Commands scene.Commands

	// AutoReload reloads the open scene when its file changes on disk.
	AutoReload bool

	// Stats has the timing of the last frame.
	Stats FrameStats

	// Controller moves the primary camera.
	Controller CameraController

	// Viewport is the render target shown by the scene view, if any.
	Viewport *Viewport

	ser      *scenefile.Serializer
	sc       *scene.Scene
	path     string
	selected scene.Entity

	// savedHash is the hash of the scene as last loaded or saved.
	savedHash uint64

	// diskHash is the hash of the file contents last seen by the editor.
	diskHash uint64

	watcher *Watcher
}

// New returns a new editor on the given scene, which may be nil for
// the default scene. The scene is given a primary camera if it has none.
func New(ser *scenefile.Serializer, sc *scene.Scene) *Editor {
	ed := &Editor{ser: ser, Controller: CameraController{Speed: DefaultSpeed}}
	if sc == nil {
		sc = scene.NewDefault(ser.Assets())
	}
	ed.setScene(sc, "")
	return ed
}

// Scene returns the open scene.
func (ed *Editor) Scene() *scene.Scene {
	return ed.sc
}

// Serializer returns the serializer used for files.
func (ed *Editor) Serializer() *scenefile.Serializer {
	return ed.ser
}

// Path returns the file of the open scene, or "" if it has not been
// saved.
func (ed *Editor) Path() string {
	return ed.path
}

// setScene replaces the open scene wholesale, freeing the old one.
func (ed *Editor) setScene(sc *scene.Scene, path string) {
	if ed.sc != nil && ed.sc != sc {
		ed.sc.Clear()
	}
	ed.Commands.Discard()
	ed.sc = sc
	ed.path = path
	ed.selected = scene.Null
	EnsureCamera(sc)
	if vp := ed.Viewport; vp != nil && vp.Target != nil {
		sz := vp.Target.Size()
		ed.resetCamera(sz.X, sz.Y)
	}
	ed.markSaved()
	if ed.watcher != nil {
		ed.watchPath()
	}
}

// EnsureCamera makes sure sc has a primary camera, reusing or creating
// the entity named "DefaultCamera" if needed, and returns it.
func EnsureCamera(sc *scene.Scene) scene.Entity {
	e := sc.GetPrimaryCamera()
	if e != scene.Null {
		return e
	}
	e = sc.GetEntity(scene.DefaultCameraName)
	if e == scene.Null {
		return scene.AddDefaultCamera(sc)
	}
	tr := scene.AddComponent(sc, e, scene.DefaultCameraTransform)
	cam := scene.AddComponent(sc, e, scene.NewCamera(true))
	cam.Primary = true
	cam.UpdateView(*tr)
	slog.Info("using DefaultCamera as primary camera", "scene", sc.Name())
	return e
}

// Camera returns the primary camera entity.
func (ed *Editor) Camera() scene.Entity {
	return ed.sc.GetPrimaryCamera()
}

// Select sets the selected entity. [scene.Null] clears the selection.
func (ed *Editor) Select(e scene.Entity) {
	ed.selected = e
}

// Selected returns the selected entity, which is [scene.Null] if none.
func (ed *Editor) Selected() scene.Entity {
	return ed.selected
}

// Validate clears the selection if it names a deleted entity.
func (ed *Editor) Validate() {
	if ed.selected != scene.Null && !ed.sc.Valid(ed.selected) {
		ed.selected = scene.Null
	}
}

// Frame runs one editor frame after the UI has been built: it draws the
// scene into the viewport through the primary camera, applies the
// queued commands, validates the selection and checks the watcher.
func (ed *Editor) Frame(r *render.Renderer) error {
	ed.Stats.Begin()
	defer ed.Stats.End()
	err := ed.draw(r)
	ed.Commands.Flush(ed.sc)
	ed.Validate()
	ed.Poll()
	return err
}

func (ed *Editor) draw(r *render.Renderer) error {
	cam := scene.NewCamera(true)
	if e := ed.Camera(); e != scene.Null {
		cam = *scene.MustGet[scene.Camera](ed.sc, e)
	}
	if vp := ed.Viewport; vp != nil && vp.Target != nil {
		vp.Target.Bind()
		defer vp.Target.Unbind()
	}
	r.BeginScene(cam)
	defer r.EndScene()
	return r.DrawScene(ed.sc)
}
