// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws a [scene.Scene] through a [gpu.Device].
//
// A frame is bracketed by [Renderer.BeginScene] and [Renderer.EndScene];
// [Renderer.DrawScene] draws every active entity with a Model, in the
// order the models were attached, with one indexed draw per mesh.
package render

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/assets"
	"cogentcore.org/openrenderer/gpu"
	"cogentcore.org/openrenderer/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotInScene is returned by [Renderer.DrawScene] outside of a
// BeginScene / EndScene pair.
var ErrNotInScene = errors.New("render: DrawScene called outside BeginScene / EndScene")

var (
	// SkyColor is the clear color.
	SkyColor = [4]float32{0.529, 0.808, 0.922, 1}

	// AmbientLight is the ambient light term passed to shaders.
	AmbientLight = mgl32.Vec3{0.5, 0.5, 0.5}
)

// AlbedoUnit is the texture unit the albedo texture is bound to.
const AlbedoUnit = 0

// Stats counts what the last frame drew.
type Stats struct {

	// Entities is the number of entities drawn.
	Entities int

	// Skipped is the number of model entities skipped as inactive.
	Skipped int

	// Meshes is the number of meshes drawn.
	Meshes int

	// DrawCalls is the number of draw calls issued, including quads.
	DrawCalls int

	// Indexes is the total number of indexes drawn.
	Indexes int
}

// Renderer draws scenes. It must be used on the thread that owns the device.
type Renderer struct {

	// Stats has the counts for the current or last frame.
	Stats Stats

	dev    gpu.Device
	assets *assets.Registry

	quad assets.Mesh

	defaultMaterial scene.Material

	lights []scene.PointLight

	camera  scene.Camera
	inScene bool
}

// New returns a new renderer drawing through dev with assets from reg.
// It sets up the full-screen quad and turns on depth testing and
// polygon offset fill.
func New(dev gpu.Device, reg *assets.Registry) (*Renderer, error) {
	if dev == nil || reg == nil {
		return nil, errors.New("render: nil device or registry")
	}
	r := &Renderer{dev: dev, assets: reg}
	r.quad = reg.NewMesh(&assets.MeshData{
		Name:      "quad",
		PosSize:   2,
		Positions: []float32{-1, 1, -1, -1, 1, -1, 1, 1},
		TexCoords: []float32{0, 0, 0, 1, 1, 1, 1, 0},
		Indexes:   []uint32{0, 1, 2, 0, 2, 3},
	})
	r.defaultMaterial = scene.DefaultMaterial(reg)
	dev.PolygonOffset(1, 1)
	dev.DepthTest(true)
	return r, nil
}

// Device returns the device the renderer draws through.
func (r *Renderer) Device() gpu.Device {
	return r.dev
}

// DefaultMaterial returns the material used for models without one.
func (r *Renderer) DefaultMaterial() scene.Material {
	return r.defaultMaterial
}

// AddLight adds a point light. Only the first light is used for shading.
func (r *Renderer) AddLight(l scene.PointLight) {
	r.lights = append(r.lights, l)
}

// Lights returns the lights.
func (r *Renderer) Lights() []scene.PointLight {
	return r.lights
}

// ClearLights removes all lights.
func (r *Renderer) ClearLights() {
	r.lights = nil
}

// InScene returns whether a BeginScene is open.
func (r *Renderer) InScene() bool {
	return r.inScene
}

// Camera returns the camera given to the last BeginScene.
func (r *Renderer) Camera() scene.Camera {
	return r.camera
}

// BeginScene starts a frame seen through cam, clearing the color and
// depth buffers of the bound framebuffer to the sky color.
func (r *Renderer) BeginScene(cam scene.Camera) {
	if r.inScene {
		slog.Warn("BeginScene called twice without EndScene")
	}
	r.dev.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], SkyColor[3])
	r.dev.Clear(true, true)
	r.camera = cam
	r.inScene = true
	r.Stats = Stats{}
}

// EndScene ends the frame.
func (r *Renderer) EndScene() {
	r.inScene = false
}

// DrawScene draws every active entity of sc that has a Model.
// Entities without a Transform are drawn at the origin, and entities
// without a Material use the default material.
func (r *Renderer) DrawScene(sc *scene.Scene) error {
	if !r.inScene {
		return errors.Log(ErrNotInScene)
	}
	for _, e := range scene.EntitiesWith[scene.Model](sc) {
		if !sc.IsActive(e) {
			r.Stats.Skipped++
			continue
		}
		model := scene.MustGet[scene.Model](sc, e)
		tr := scene.NewTransform()
		if t, err := scene.GetComponent[scene.Transform](sc, e); err == nil {
			tr = *t
		}
		mat := r.defaultMaterial
		if m, err := scene.GetComponent[scene.Material](sc, e); err == nil {
			mat = *m
		}
		r.DrawModel(model, mat, tr)
		r.Stats.Entities++
	}
	return nil
}

// DrawModel draws each mesh of the model with the given material and
// transform, using the current camera and the first light.
func (r *Renderer) DrawModel(model *scene.Model, mat scene.Material, tr scene.Transform) {
	shader := mat.Shader
	if shader == nil {
		shader = r.defaultMaterial.Shader
	}
	albedo := mat.Albedo
	if albedo == nil {
		albedo = r.defaultMaterial.Albedo
	}
	var light scene.PointLight
	if len(r.lights) > 0 {
		light = r.lights[0]
	}
	modelMat := tr.Matrix()
	p := shader.Program
	for _, mesh := range model.Meshes {
		r.dev.BindVertexArray(mesh.VertexArray)
		r.dev.BindIndexBuffer(mesh.IndexBuffer)
		r.dev.UseProgram(p)
		r.dev.BindTexture(AlbedoUnit, albedo.Handle)

		r.dev.SetMat4(p, "uModel", modelMat)
		r.dev.SetMat4(p, "uView", r.camera.View)
		r.dev.SetMat4(p, "uProjection", r.camera.Projection)
		r.dev.SetInt(p, "uTexture", AlbedoUnit)
		r.dev.SetVec3(p, "uLightColor", light.Color)
		r.dev.SetVec3(p, "uLightPos", light.Position)
		r.dev.SetFloat(p, "uLightIntensity", light.Intensity)
		r.dev.SetVec3(p, "uAmbientLight", AmbientLight)

		r.dev.DrawIndexed(mesh.IndexCount)
		r.Stats.Meshes++
		r.Stats.DrawCalls++
		r.Stats.Indexes += int(mesh.IndexCount)
	}
}

// DrawQuad draws the full-screen quad with the given shader.
// A nil shader uses the registry quad shader.
func (r *Renderer) DrawQuad(shader *assets.Shader) {
	if shader == nil {
		shader = r.assets.QuadShader()
	}
	r.dev.BindVertexArray(r.quad.VertexArray)
	r.dev.UseProgram(shader.Program)
	r.dev.BindIndexBuffer(r.quad.IndexBuffer)
	r.dev.DrawIndexed(r.quad.IndexCount)
	r.Stats.DrawCalls++
}

// Blit draws the given texture over the bound framebuffer with the quad shader.
func (r *Renderer) Blit(tex gpu.Texture) {
	sh := r.assets.QuadShader()
	r.dev.UseProgram(sh.Program)
	r.dev.BindTexture(AlbedoUnit, tex)
	r.dev.SetInt(sh.Program, "uTexture", AlbedoUnit)
	r.DrawQuad(sh)
}

// Close frees the quad.
func (r *Renderer) Close() {
	r.assets.FreeMesh(r.quad)
}
