// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"path/filepath"

	"cogentcore.org/openrenderer/assets"
	"github.com/go-gl/mathgl/mgl32"
)

// Component is the closed set of component types a [Scene] stores.
type Component interface {
	Name | Active | Transform | Model | Material | Camera
}

// Name is the display name of an entity. Names are unique within a scene.
type Name struct {
	Name string
}

// Active marks whether an entity takes part in rendering.
// It is attached with On = true when an entity is created.
type Active struct {
	On bool
}

// Model is a renderable model loaded from a file. The file path is the
// only state that is saved; meshes come from the asset registry.
// A Model made by [LoadModel] holds a reference on its meshes in the
// registry, even when the file has no objects.
type Model struct {
	File   string
	Meshes []assets.Mesh

	// held is whether the model holds a registry reference for File.
	held bool
}

// Loaded returns whether the model holds loaded meshes for its file.
func (m *Model) Loaded() bool {
	return m.held
}

// Name returns the base name of the model file, for display.
func (m *Model) Name() string {
	if m.File == "" {
		return ""
	}
	return filepath.Base(m.File)
}

// LoadModel loads the meshes for the given file from the registry.
// On failure the returned Model still has the path, with no meshes.
func LoadModel(reg *assets.Registry, file string) (Model, error) {
	m := Model{File: file}
	if file == "" {
		return m, nil
	}
	ms, err := reg.Meshes(file)
	if err != nil {
		return m, err
	}
	m.Meshes = ms
	m.held = true
	return m, nil
}

// Material is how a model is shaded. Albedo and Shader point to
// registry-owned assets; Albedo holds a reference unless it is the
// default texture.
type Material struct {
	Albedo *assets.Texture
	Shader *assets.Shader
	Name   string

	// AlbedoFile is the albedo file named by the scene. It is kept when
	// the file could not be loaded and Albedo is the default texture, so
	// that saving does not lose it.
	AlbedoFile string
}

// DefaultMaterial returns the material made of the registry default
// texture and shader, named "default".
func DefaultMaterial(reg *assets.Registry) Material {
	return Material{Albedo: reg.DefaultTexture(), Shader: reg.DefaultShader(), Name: assets.DefaultName}
}

// AlbedoPath returns the file path of the albedo texture. For the
// default texture it is AlbedoFile, which is empty unless a file
// failed to load.
func (m *Material) AlbedoPath() string {
	if m.Albedo != nil && m.Albedo.Path != "" {
		return m.Albedo.Path
	}
	return m.AlbedoFile
}

// ShaderName returns the name of the shader, or "" if none.
func (m *Material) ShaderName() string {
	if m.Shader == nil {
		return ""
	}
	return m.Shader.Name
}

// PointLight is a light at a position. Lights are frame level state
// held by the renderer, not scene components.
type PointLight struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}
