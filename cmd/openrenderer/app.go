// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/assets"
	"cogentcore.org/openrenderer/editor"
	"cogentcore.org/openrenderer/gpu/glgpu"
	"cogentcore.org/openrenderer/render"
	"cogentcore.org/openrenderer/scene"
	"cogentcore.org/openrenderer/scenefile"
	"cogentcore.org/openrenderer/settings"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
)

// App is the editor window and everything drawn in it.
type App struct {
	settings *settings.Settings
	win      *glfw.Window
	dev      *glgpu.Device
	assets   *assets.Registry
	renderer *render.Renderer
	editor   *editor.Editor
	title    string
}

// NewApp opens the main window and loads the startup scene.
func NewApp(se *settings.Settings) (*App, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("openrenderer: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(se.Window.Width, se.Window.Height, se.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("openrenderer: creating window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	app := &App{settings: se, win: win, title: se.Window.Title}
	if err := app.init(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init() error {
	var err error
	app.dev, err = glgpu.Init()
	if err != nil {
		return err
	}
	app.assets, err = assets.NewRegistry(app.dev)
	if err != nil {
		return err
	}
	app.renderer, err = render.New(app.dev, app.assets)
	if err != nil {
		return err
	}
	app.renderer.AddLight(scene.PointLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: 1})

	ser := scenefile.New(app.assets)
	app.editor = editor.New(ser, nil)
	app.editor.AutoReload = app.settings.AutoReload
	app.editor.Controller.Speed = app.settings.CameraSpeed
	app.open(app.settings.Scene)
	if app.settings.AutoReload {
		errors.Log(app.editor.Watch())
	}

	w, h := app.win.GetFramebufferSize()
	if err := app.editor.NewViewport(app.renderer, w, h); err != nil {
		return err
	}
	app.applyFOV()
	app.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		errors.Log(app.editor.Resize(width, height))
	})
	app.win.SetKeyCallback(app.onKey)
	return nil
}

// open loads the scene in path, falling back to the default scene, and
// remembers it as recent.
func (app *App) open(path string) {
	if path == "" {
		return
	}
	app.editor.Load(path)
	if app.editor.Path() != "" {
		app.settings.AddRecent(app.editor.Path())
		app.settings.Scene = app.editor.Path()
	}
	app.applyFOV()
}

func (app *App) applyFOV() {
	e := app.editor.Camera()
	if e == scene.Null {
		return
	}
	cam := scene.MustGet[scene.Camera](app.editor.Scene(), e)
	cam.FOV = app.settings.FOV
	if vp := app.editor.Viewport; vp != nil {
		sz := vp.Target.Size()
		cam.Reset(sz.X, sz.Y)
	}
}

// Run runs the frame loop until the window is closed.
func (app *App) Run() {
	for !app.win.ShouldClose() {
		glfw.PollEvents()
		app.editor.MoveCamera(app)
		errors.Log(app.editor.Frame(app.renderer))

		w, h := app.win.GetFramebufferSize()
		app.dev.Viewport(0, 0, int32(w), int32(h))
		app.dev.Clear(true, true)
		app.renderer.Blit(app.editor.Viewport.Target.Texture())
		app.updateTitle()
		app.win.SwapBuffers()
	}
}

func (app *App) updateTitle() {
	title := app.settings.Window.Title + " - " + app.editor.Scene().Name()
	if app.editor.Dirty() {
		title += " *"
	}
	if title != app.title {
		app.title = title
		app.win.SetTitle(title)
	}
}

// Close frees everything the app holds and closes the window.
func (app *App) Close() {
	if app.editor != nil {
		app.editor.Scene().Clear()
		app.editor.Close()
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
	if app.assets != nil {
		app.assets.Close()
	}
	if app.win != nil {
		app.win.Destroy()
	}
	glfw.Terminate()
}

var moveKeys = map[editor.Key]glfw.Key{
	editor.KeyForward: glfw.KeyW,
	editor.KeyBack:    glfw.KeyS,
	editor.KeyLeft:    glfw.KeyA,
	editor.KeyRight:   glfw.KeyD,
	editor.KeyUp:      glfw.KeyE,
	editor.KeyDown:    glfw.KeyQ,
}

// KeyDown reports whether the camera key k is held. Movement is only
// applied while the right mouse button is held, as in most editors.
func (app *App) KeyDown(k editor.Key) bool {
	if app.win.GetMouseButton(glfw.MouseButtonRight) != glfw.Press {
		return false
	}
	return app.win.GetKey(moveKeys[k]) == glfw.Press
}

func (app *App) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	ed := app.editor
	ctrl := mods&(glfw.ModControl|glfw.ModSuper) != 0
	switch {
	case ctrl && key == glfw.KeyN:
		ed.NewScene()
		app.applyFOV()
	case ctrl && key == glfw.KeyO:
		app.openDialog()
	case ctrl && key == glfw.KeyS && mods&glfw.ModShift != 0:
		app.saveDialog()
	case ctrl && key == glfw.KeyS:
		if err := ed.Save(); errors.Is(err, editor.ErrNoPath) {
			app.saveDialog()
		}
	case ctrl && key == glfw.KeyD:
		if e := ed.Selected(); e != scene.Null {
			ed.Duplicate(e)
		}
	case ctrl && key == glfw.KeyE:
		ed.CreateEmpty()
	case key == glfw.KeyDelete:
		if e := ed.Selected(); e != scene.Null {
			ed.Delete(e)
		}
	case key == glfw.KeyTab:
		app.selectNext()
	}
}

// selectNext selects the entity after the selected one in the hierarchy.
func (app *App) selectNext() {
	items := app.editor.Hierarchy("")
	if len(items) == 0 {
		return
	}
	next := 0
	for i, it := range items {
		if it.Selected {
			next = (i + 1) % len(items)
		}
	}
	app.editor.Select(items[next].Entity)
	slog.Info("selected", "entity", items[next].Name)
}

func (app *App) openDialog() {
	path, err := dialog.File().Filter("YAML Files", "yaml").Title("Open Scene").Load()
	if err != nil || path == "" {
		return
	}
	if err := app.editor.Open(path); err != nil {
		slog.Error("could not open scene", "path", path, "err", err)
		return
	}
	app.settings.AddRecent(app.editor.Path())
	app.settings.Scene = app.editor.Path()
	app.applyFOV()
}

func (app *App) saveDialog() {
	path, err := dialog.File().Filter("YAML Files", "yaml").Title("Save Scene").
		SetStartFile(app.editor.DefaultSaveName()).Save()
	if err != nil || path == "" {
		return
	}
	if !strings.HasSuffix(path, editor.Extension) {
		path += editor.Extension
	}
	if errors.Log(app.editor.SaveAs(path)) == nil {
		app.settings.AddRecent(path)
		app.settings.Scene = path
	}
}
