// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/openrenderer/assets"
	"cogentcore.org/openrenderer/gpu/gpurec"
	"cogentcore.org/openrenderer/render"
	"cogentcore.org/openrenderer/scene"
	"cogentcore.org/openrenderer/scenefile"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triObj = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

type fixture struct {
	dev *gpurec.Device
	reg *assets.Registry
	ser *scenefile.Serializer
	ed  *Editor
	dir string
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{dev: gpurec.New(), dir: t.TempDir()}
	var err error
	f.reg, err = assets.NewRegistry(f.dev)
	require.NoError(t, err)
	f.ser = scenefile.New(f.reg)
	f.ed = New(f.ser, nil)
	t.Cleanup(f.ed.Close)
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	p := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0666))
	return p
}

func (f *fixture) writePNG(t *testing.T, name string) string {
	p := filepath.Join(f.dir, name)
	fp, err := os.Create(p)
	require.NoError(t, err)
	defer fp.Close()
	require.NoError(t, png.Encode(fp, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return p
}

func flushed(ed *Editor) int {
	return ed.Commands.Flush(ed.Scene())
}

func TestNewEnsuresCamera(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	assert.Equal(t, scene.DefaultSceneName, sc.Name())
	assert.Equal(t, sc.GetEntity(scene.DefaultCameraName), f.ed.Camera())
	assert.Equal(t, "", f.ed.Path())
	assert.False(t, f.ed.Dirty())

	other := scene.New("Bare", f.reg)
	e := other.CreateEntity(scene.DefaultCameraName)
	ed := New(f.ser, other)
	assert.Equal(t, e, ed.Camera())
	assert.True(t, scene.MustGet[scene.Camera](other, e).Primary)
	assert.True(t, scene.HasComponent[scene.Transform](other, e))

	empty := scene.New("Empty", f.reg)
	ed = New(f.ser, empty)
	assert.Equal(t, empty.GetEntity(scene.DefaultCameraName), ed.Camera())
	assert.NotEqual(t, scene.Null, ed.Camera())
}

func TestMatchFilter(t *testing.T) {
	assert.True(t, MatchFilter("", "anything"))
	assert.True(t, MatchFilter("cu", "Cube"))
	assert.True(t, MatchFilter("SPHERE", "Sphere"))
	assert.True(t, MatchFilter("Sphree", "Sphere"))
	assert.False(t, MatchFilter("xyz", "Cube"))
}

func TestHierarchy(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	cube := sc.CreateEntity("Cube")
	sc.CreateEntity("Sphere")
	sc.SetActive(cube, false)
	f.ed.Select(cube)

	items := f.ed.Hierarchy("")
	require.Len(t, items, 3)
	assert.Equal(t, scene.DefaultCameraName, items[0].Name)
	assert.Equal(t, Item{Entity: cube, Name: "Cube", Active: false, Selected: true}, items[1])

	items = f.ed.Hierarchy("cube")
	require.Len(t, items, 1)
	assert.Equal(t, cube, items[0].Entity)
	assert.Empty(t, f.ed.Hierarchy("qqqq"))
}

func TestQueuedEdits(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	f.ed.CreateEmpty()
	f.ed.CreateEmpty()
	assert.Equal(t, 1, sc.Len())
	assert.Equal(t, 2, flushed(f.ed))
	first := sc.GetEntity(EmptyName)
	second := sc.GetEntity(EmptyName + " (1)")
	require.NotEqual(t, scene.Null, first)
	require.NotEqual(t, scene.Null, second)
	assert.Equal(t, second, f.ed.Selected())

	f.ed.ToggleActive(first)
	f.ed.Duplicate(first)
	flushed(f.ed)
	assert.False(t, sc.IsActive(first))
	dup := sc.GetEntity(EmptyName + " (copy)")
	require.NotEqual(t, scene.Null, dup)
	assert.Equal(t, dup, f.ed.Selected())
	assert.False(t, sc.IsActive(dup))

	f.ed.Delete(dup)
	assert.True(t, sc.Valid(dup))
	flushed(f.ed)
	assert.False(t, sc.Valid(dup))
	f.ed.Validate()
	assert.Equal(t, scene.Null, f.ed.Selected())
}

func TestRenameAndTransform(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	e := sc.CreateEntity("Cube")
	assert.Error(t, f.ed.Rename(e, ""))
	assert.ErrorIs(t, f.ed.Rename(e, scene.DefaultCameraName), scene.ErrDuplicateName)
	require.NoError(t, f.ed.Rename(e, "Box"))
	assert.Equal(t, "Box", sc.EntityName(e))

	tr := scene.NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	require.NoError(t, f.ed.SetTransform(e, tr))
	assert.Equal(t, tr, *scene.MustGet[scene.Transform](sc, e))

	cam := f.ed.Camera()
	tr.Position = mgl32.Vec3{0, 0, 10}
	require.NoError(t, f.ed.SetTransform(cam, tr))
	view := scene.MustGet[scene.Camera](sc, cam).View
	assert.True(t, view.ApproxEqual(mgl32.Translate3D(0, 0, -10)))
	assert.ErrorIs(t, f.ed.SetTransform(scene.Null, tr), scene.ErrInvalidEntity)
}

func TestAddRemoveComponent(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	e := sc.CreateEntity("Thing")
	for _, k := range Kinds() {
		require.NoError(t, f.ed.AddComponent(e, k))
	}
	for _, k := range Kinds() {
		assert.False(t, f.ed.Has(e, k), k.String())
	}
	flushed(f.ed)
	for _, k := range Kinds() {
		assert.True(t, f.ed.Has(e, k), k.String())
	}
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, scene.MustGet[scene.Transform](sc, e).Scale)
	assert.False(t, scene.MustGet[scene.Camera](sc, e).Primary)
	assert.Equal(t, f.reg.DefaultTexture(), scene.MustGet[scene.Material](sc, e).Albedo)

	require.NoError(t, f.ed.RemoveComponent(e, KindCamera))
	flushed(f.ed)
	assert.False(t, f.ed.Has(e, KindCamera))
	assert.ErrorIs(t, f.ed.AddComponent(e, Kind(9)), ErrUnknownKind)
	assert.ErrorIs(t, f.ed.RemoveComponent(e, Kind(-1)), ErrUnknownKind)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestLoadModelAndAlbedo(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	e := sc.CreateEntity("Tri")
	obj := f.write(t, "tri.obj", triObj)
	require.NoError(t, f.ed.LoadModel(e, obj))
	m := scene.MustGet[scene.Model](sc, e)
	assert.Equal(t, obj, m.File)
	assert.Len(t, m.Meshes, 1)

	assert.Error(t, f.ed.LoadModel(e, filepath.Join(f.dir, "missing.obj")))
	assert.Equal(t, obj, scene.MustGet[scene.Model](sc, e).File)

	tex := f.writePNG(t, "brick.png")
	require.NoError(t, f.ed.LoadAlbedo(e, tex))
	mat := scene.MustGet[scene.Material](sc, e)
	assert.Equal(t, tex, mat.AlbedoPath())
	assert.Equal(t, "brick.png", mat.Name)
	refs, ok := f.reg.Refs(tex)
	assert.True(t, ok)
	assert.Equal(t, 1, refs)

	assert.Error(t, f.ed.LoadAlbedo(e, f.write(t, "bad.png", "not an image")))
	assert.Equal(t, tex, scene.MustGet[scene.Material](sc, e).AlbedoPath())

	require.NoError(t, f.ed.LoadAlbedo(e, ""))
	assert.Equal(t, f.reg.DefaultTexture(), scene.MustGet[scene.Material](sc, e).Albedo)
	_, ok = f.reg.Refs(tex)
	assert.False(t, ok)
}

func TestSetPrimary(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	old := f.ed.Camera()
	e := sc.CreateEntity("Second")
	scene.AddComponent(sc, e, scene.NewCamera(false))
	require.NoError(t, f.ed.SetPrimary(e))
	assert.Equal(t, e, f.ed.Camera())
	assert.False(t, scene.MustGet[scene.Camera](sc, old).Primary)
	assert.ErrorIs(t, f.ed.SetPrimary(sc.CreateEntity("NoCam")), scene.ErrMissingComponent)
}

func TestSaveOpen(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	assert.ErrorIs(t, f.ed.Save(), ErrNoPath)
	assert.Equal(t, "Default Scene.yaml", f.ed.DefaultSaveName())

	sc.CreateEntity("Cube")
	assert.True(t, f.ed.Dirty())
	path := filepath.Join(f.dir, "scenes", "one.yaml")
	require.NoError(t, f.ed.SaveAs(path))
	assert.False(t, f.ed.Dirty())
	assert.Equal(t, path, f.ed.Path())

	require.NoError(t, f.ed.Rename(sc.GetEntity("Cube"), "Box"))
	assert.True(t, f.ed.Dirty())
	require.NoError(t, f.ed.Save())
	assert.False(t, f.ed.Dirty())

	f.ed.NewScene()
	assert.Equal(t, 1, f.ed.Scene().Len())
	require.NoError(t, f.ed.Open(path))
	assert.Equal(t, path, f.ed.Path())
	assert.NotEqual(t, scene.Null, f.ed.Scene().GetEntity("Box"))
	assert.Equal(t, "one.yaml", f.ed.DefaultSaveName())
	assert.False(t, f.ed.Dirty())

	opened := f.ed.Scene()
	assert.Error(t, f.ed.Open(filepath.Join(f.dir, "missing.yaml")))
	assert.Same(t, opened, f.ed.Scene())
	assert.Equal(t, path, f.ed.Path())

	f.ed.Load(filepath.Join(f.dir, "missing.yaml"))
	assert.Equal(t, scene.DefaultSceneName, f.ed.Scene().Name())
	assert.Equal(t, "", f.ed.Path())
}

func TestReplaceResetsState(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	e := sc.CreateEntity("Cube")
	f.ed.Select(e)
	f.ed.CreateEmpty()
	f.ed.NewScene()
	assert.Equal(t, scene.Null, f.ed.Selected())
	assert.Equal(t, 0, f.ed.Commands.Len())
	assert.Equal(t, 0, sc.Len())
}

func TestViewport(t *testing.T) {
	f := newFixture(t)
	r, err := render.New(f.dev, f.reg)
	require.NoError(t, err)
	require.NoError(t, f.ed.NewViewport(r, 800, 400))
	cam := scene.MustGet[scene.Camera](f.ed.Scene(), f.ed.Camera())
	assert.InDelta(t, 2.0, cam.Aspect, 1e-6)

	require.NoError(t, f.ed.Resize(400, 400))
	assert.InDelta(t, 1.0, cam.Aspect, 1e-6)
	assert.Equal(t, image.Pt(400, 400), f.ed.Viewport.Target.Size())
	require.NoError(t, f.ed.Resize(0, 10))
	assert.Equal(t, image.Pt(400, 400), f.ed.Viewport.Target.Size())

	f.ed.Close()
	assert.Nil(t, f.ed.Viewport)
	assert.Equal(t, 0, f.dev.LiveCount("framebuffer"))
}

func TestApplyGizmo(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	e := sc.CreateEntity("Tri")
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	assert.False(t, f.ed.ApplyGizmo(e, m))

	f.ed.AddComponent(e, KindTransform)
	flushed(f.ed)
	assert.False(t, f.ed.ApplyGizmo(e, m))
	require.NoError(t, f.ed.LoadModel(e, f.write(t, "tri.obj", triObj)))
	assert.True(t, f.ed.ApplyGizmo(e, m))
	tr := scene.MustGet[scene.Transform](sc, e)
	assert.True(t, tr.Position.ApproxEqual(mgl32.Vec3{1, 2, 3}))
	assert.True(t, tr.Scale.ApproxEqual(mgl32.Vec3{2, 2, 2}))
	assert.False(t, f.ed.ApplyGizmo(f.ed.Camera(), m))
}

type keys map[Key]bool

func (k keys) KeyDown(key Key) bool { return k[key] }

func TestCameraController(t *testing.T) {
	f := newFixture(t)
	sc := f.ed.Scene()
	e := f.ed.Camera()
	tr := scene.MustGet[scene.Transform](sc, e)
	start := tr.Position

	assert.False(t, f.ed.MoveCamera(keys{}))
	assert.True(t, f.ed.MoveCamera(keys{KeyForward: true}))
	assert.True(t, tr.Position.ApproxEqual(start.Add(mgl32.Vec3{0, 0, -DefaultSpeed})))
	assert.True(t, f.ed.MoveCamera(keys{KeyForward: true, KeyBack: false, KeyUp: true}))
	assert.True(t, f.ed.MoveCamera(keys{KeyLeft: true, KeyRight: true, KeyDown: true}))
	assert.InDelta(t, start.Y(), tr.Position.Y(), 1e-6)

	cam := scene.MustGet[scene.Camera](sc, e)
	assert.True(t, cam.View.ApproxEqual(tr.RigidMatrix().Inv()))

	tr.Rotation = mgl32.Vec3{0, 90, 0}
	before := tr.Position
	cc := CameraController{Speed: 1}
	cc.Update(keys{KeyForward: true}, tr, cam)
	d := tr.Position.Sub(before)
	assert.InDelta(t, -1, d.X(), 1e-5)
	assert.InDelta(t, 0, d.Z(), 1e-5)
}

func TestFrameStats(t *testing.T) {
	now := time.Unix(0, 0)
	fs := FrameStats{Now: func() time.Time { return now }}
	assert.Zero(t, fs.FPS())
	fs.End()
	assert.Zero(t, fs.DeltaTime)
	fs.Begin()
	now = now.Add(20 * time.Millisecond)
	fs.End()
	assert.Equal(t, 20*time.Millisecond, fs.DeltaTime)
	assert.InDelta(t, 50.0, fs.FPS(), 1e-9)
}

func TestFrame(t *testing.T) {
	f := newFixture(t)
	r, err := render.New(f.dev, f.reg)
	require.NoError(t, err)
	require.NoError(t, f.ed.NewViewport(r, 64, 64))
	e := f.ed.Scene().CreateEntity("Tri")
	require.NoError(t, f.ed.LoadModel(e, f.write(t, "tri.obj", triObj)))
	f.ed.Select(e)
	f.ed.Delete(e)

	f.dev.Reset()
	require.NoError(t, f.ed.Frame(r))
	assert.Equal(t, 1, r.Stats.DrawCalls)
	assert.False(t, r.InScene())
	assert.False(t, f.ed.Scene().Valid(e))
	assert.Equal(t, scene.Null, f.ed.Selected())
	binds := f.dev.Find("BindFramebuffer")
	require.Len(t, binds, 2)
	assert.Equal(t, f.ed.Viewport.Target.Framebuffer(), binds[0].Args[0])
}

func TestWatchReload(t *testing.T) {
	f := newFixture(t)
	f.ed.AutoReload = true
	path := filepath.Join(f.dir, "watched.yaml")
	require.NoError(t, f.ed.SaveAs(path))
	require.NoError(t, f.ed.Watch())
	assert.False(t, f.ed.Poll())

	content := "Scene:\n  - Name: Cube\n  - Name: DefaultCamera\n    Transform:\n      Position: [0, 2, 5]\n    Camera:\n      Primary: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	require.Eventually(t, func() bool {
		return f.ed.Poll()
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotEqual(t, scene.Null, f.ed.Scene().GetEntity("Cube"))
	assert.Equal(t, path, f.ed.Path())

	require.NoError(t, f.ed.Save())
	time.Sleep(100 * time.Millisecond)
	assert.False(t, f.ed.Poll())
}
