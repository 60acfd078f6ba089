// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/openrenderer/assets"
	"cogentcore.org/openrenderer/gpu"
	"cogentcore.org/openrenderer/gpu/gpurec"
	"cogentcore.org/openrenderer/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triObj = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

type fixture struct {
	dev *gpurec.Device
	reg *assets.Registry
	r   *Renderer
	sc  *scene.Scene
	obj string
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{dev: gpurec.New()}
	var err error
	f.reg, err = assets.NewRegistry(f.dev)
	require.NoError(t, err)
	f.r, err = New(f.dev, f.reg)
	require.NoError(t, err)
	f.sc = scene.New("Test", f.reg)
	f.obj = filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(f.obj, []byte(triObj), 0666))
	return f
}

func (f *fixture) addModel(t *testing.T, name string) scene.Entity {
	e := f.sc.CreateEntity(name)
	require.NotEqual(t, scene.Null, e)
	m, err := scene.LoadModel(f.reg, f.obj)
	require.NoError(t, err)
	scene.AddComponent(f.sc, e, m)
	return e
}

func TestNewEnablesState(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 1, f.dev.Count("DepthTest"))
	assert.Equal(t, []any{float32(1), float32(1)}, f.dev.Find("PolygonOffset")[0].Args)
	_, err := New(nil, f.reg)
	assert.Error(t, err)
}

func TestDrawSceneOutsideFrame(t *testing.T) {
	f := newFixture(t)
	f.addModel(t, "Tri")
	f.dev.Reset()
	assert.ErrorIs(t, f.r.DrawScene(f.sc), ErrNotInScene)
	assert.Equal(t, 0, f.dev.Count("DrawIndexed"))

	f.r.BeginScene(scene.NewCamera(true))
	assert.True(t, f.r.InScene())
	assert.NoError(t, f.r.DrawScene(f.sc))
	f.r.EndScene()
	assert.False(t, f.r.InScene())
	assert.ErrorIs(t, f.r.DrawScene(f.sc), ErrNotInScene)
}

func TestBeginSceneClears(t *testing.T) {
	f := newFixture(t)
	f.dev.Reset()
	f.r.BeginScene(scene.NewCamera(true))
	assert.Equal(t, []string{"ClearColor", "Clear"}, f.dev.Ops())
	assert.Equal(t, []any{float32(0.529), float32(0.808), float32(0.922), float32(1)}, f.dev.Calls[0].Args)
	assert.Equal(t, []any{true, true}, f.dev.Calls[1].Args)
}

func TestDefaultMaterial(t *testing.T) {
	f := newFixture(t)
	f.addModel(t, "Tri")
	f.dev.Reset()
	f.r.BeginScene(scene.NewCamera(true))
	require.NoError(t, f.r.DrawScene(f.sc))
	f.r.EndScene()

	dm := f.r.DefaultMaterial()
	assert.Same(t, f.reg.DefaultTexture(), dm.Albedo)
	assert.Same(t, f.reg.DefaultShader(), dm.Shader)
	assert.Equal(t, "default", dm.Name)

	binds := f.dev.Find("BindTexture")
	require.Len(t, binds, 1)
	assert.Equal(t, []any{int32(AlbedoUnit), f.reg.DefaultTexture().Handle}, binds[0].Args)
	uses := f.dev.Find("UseProgram")
	require.Len(t, uses, 1)
	assert.Equal(t, []any{f.reg.DefaultShader().Program}, uses[0].Args)
}

func TestDrawUniforms(t *testing.T) {
	f := newFixture(t)
	e := f.addModel(t, "Tri")
	tr := scene.AddComponent(f.sc, e, scene.Transform{Position: mgl32.Vec3{1, 2, 3}, Scale: mgl32.Vec3{1, 1, 1}})
	f.r.AddLight(scene.PointLight{Position: mgl32.Vec3{0, 1, 1}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 2})
	f.r.AddLight(scene.PointLight{Position: mgl32.Vec3{9, 9, 9}, Intensity: 9})
	cam := scene.NewCamera(true)
	cam.UpdateView(scene.DefaultCameraTransform)
	f.dev.Reset()

	f.r.BeginScene(cam)
	require.NoError(t, f.r.DrawScene(f.sc))
	f.r.EndScene()

	assert.Equal(t, []any{tr.Matrix()}, f.dev.UniformValues("uModel"))
	assert.Equal(t, []any{cam.View}, f.dev.UniformValues("uView"))
	assert.Equal(t, []any{cam.Projection}, f.dev.UniformValues("uProjection"))
	assert.Equal(t, []any{int32(AlbedoUnit)}, f.dev.UniformValues("uTexture"))
	assert.Equal(t, []any{mgl32.Vec3{0, 1, 1}}, f.dev.UniformValues("uLightPos"))
	assert.Equal(t, []any{mgl32.Vec3{1, 1, 1}}, f.dev.UniformValues("uLightColor"))
	assert.Equal(t, []any{float32(2)}, f.dev.UniformValues("uLightIntensity"))
	assert.Equal(t, []any{mgl32.Vec3{0.5, 0.5, 0.5}}, f.dev.UniformValues("uAmbientLight"))
	assert.Equal(t, []any{int32(3)}, f.dev.Find("DrawIndexed")[0].Args)
	assert.Equal(t, Stats{Entities: 1, Meshes: 1, DrawCalls: 1, Indexes: 3}, f.r.Stats)
}

func TestDrawNoLightNoTransform(t *testing.T) {
	f := newFixture(t)
	f.addModel(t, "Tri")
	f.r.BeginScene(scene.NewCamera(true))
	require.NoError(t, f.r.DrawScene(f.sc))
	f.r.EndScene()
	assert.Equal(t, []any{mgl32.Ident4()}, f.dev.UniformValues("uModel"))
	assert.Equal(t, []any{float32(0)}, f.dev.UniformValues("uLightIntensity"))
}

func TestDrawOrderAndInactive(t *testing.T) {
	f := newFixture(t)
	a := f.addModel(t, "A")
	b := f.addModel(t, "B")
	c := f.addModel(t, "C")
	ta := scene.AddComponent(f.sc, a, scene.Transform{Position: mgl32.Vec3{1, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	tc := scene.AddComponent(f.sc, c, scene.Transform{Position: mgl32.Vec3{3, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	scene.AddComponent(f.sc, b, scene.NewTransform())
	f.sc.SetActive(b, false)

	f.r.BeginScene(scene.NewCamera(true))
	require.NoError(t, f.r.DrawScene(f.sc))
	f.r.EndScene()
	assert.Equal(t, []any{ta.Matrix(), tc.Matrix()}, f.dev.UniformValues("uModel"))
	assert.Equal(t, 1, f.r.Stats.Skipped)
	assert.Equal(t, 2, f.r.Stats.Entities)
}

func TestExplicitMaterial(t *testing.T) {
	f := newFixture(t)
	e := f.addModel(t, "Tri")
	sh, err := f.reg.AddShader("flat", "v", "f")
	require.NoError(t, err)
	scene.AddComponent(f.sc, e, scene.Material{Albedo: f.reg.DefaultTexture(), Shader: sh, Name: "flat"})
	f.dev.Reset()
	f.r.BeginScene(scene.NewCamera(true))
	require.NoError(t, f.r.DrawScene(f.sc))
	f.r.EndScene()
	assert.Equal(t, []any{sh.Program}, f.dev.Find("UseProgram")[0].Args)
}

func TestDrawQuad(t *testing.T) {
	f := newFixture(t)
	f.dev.Reset()
	f.r.DrawQuad(nil)
	assert.Equal(t, []string{"BindVertexArray", "UseProgram", "BindIndexBuffer", "DrawIndexed"}, f.dev.Ops())
	assert.Equal(t, []any{f.reg.QuadShader().Program}, f.dev.Calls[1].Args)
	assert.Equal(t, []any{int32(6)}, f.dev.Calls[3].Args)

	f.dev.Reset()
	f.r.Blit(gpu.Texture(42))
	assert.Equal(t, []any{int32(AlbedoUnit), gpu.Texture(42)}, f.dev.Find("BindTexture")[0].Args)
	assert.Equal(t, 1, f.dev.Count("DrawIndexed"))
}

func TestTarget(t *testing.T) {
	dev := gpurec.New()
	tg, err := NewTarget(dev, 640, 480)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(640, 480), tg.Size())
	tex := tg.Texture()
	assert.NotZero(t, tex)

	require.NoError(t, tg.Resize(640, 480))
	require.NoError(t, tg.Resize(0, 100))
	assert.Equal(t, 1, dev.Count("NewFramebuffer"))
	assert.Equal(t, tex, tg.Texture())

	require.NoError(t, tg.Resize(800, 600))
	assert.Equal(t, 2, dev.Count("NewFramebuffer"))
	assert.Equal(t, 1, dev.Count("DeleteFramebuffer"))
	assert.Equal(t, image.Pt(800, 600), tg.Size())

	dev.Reset()
	tg.Bind()
	tg.Unbind()
	assert.Equal(t, []string{"BindFramebuffer", "Viewport", "BindFramebuffer"}, dev.Ops())
	assert.Equal(t, []any{int32(0), int32(0), int32(800), int32(600)}, dev.Calls[1].Args)

	tg.Close()
	assert.Equal(t, 0, dev.LiveCount("framebuffer"))
	assert.Equal(t, 0, dev.LiveCount("texture"))

	_, err = NewTarget(dev, 0, 0)
	assert.Error(t, err)
}
