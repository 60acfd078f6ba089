// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets manages the GPU resources that scene components refer
// to: textures, shader programs and mesh sets. A [Registry] owns the
// process default texture and shader, and caches everything loaded from
// files by path with reference counts, so that a scene reload or an
// entity delete frees what is no longer used.
package assets

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/openrenderer/gpu"
)

// Registry is the set of loaded assets for one graphics device.
// It must only be used on the thread that owns the device.
type Registry struct {

	// Decoders has the mesh decoders, keyed by lowercase file extension
	// including the dot, e.g. ".obj".
	Decoders map[string]Decoder

	dev gpu.Device

	defaultTexture *Texture
	defaultShader  *Shader
	quadShader     *Shader

	textures *ordmap.Map[string, *Texture]
	shaders  *ordmap.Map[string, *Shader]
	meshes   *ordmap.Map[string, *meshSet]
}

// NewRegistry returns a new registry for the given device, creating the
// default texture and compiling the built-in shaders. It fails if a
// built-in shader does not compile.
func NewRegistry(dev gpu.Device) (*Registry, error) {
	rg := &Registry{
		Decoders: map[string]Decoder{".obj": &ObjDecoder{}},
		dev:      dev,
		textures: ordmap.New[string, *Texture](),
		shaders:  ordmap.New[string, *Shader](),
		meshes:   ordmap.New[string, *meshSet](),
	}
	rg.defaultTexture = rg.newTexture(DefaultName, "", whiteImage())
	var err error
	rg.defaultShader, err = rg.AddShader(DefaultName, defaultVertex, defaultFragment)
	if err != nil {
		return nil, err
	}
	rg.quadShader, err = rg.AddShader(QuadName, quadVertex, quadFragment)
	if err != nil {
		return nil, err
	}
	return rg, nil
}

// Device returns the device the registry uploads to.
func (rg *Registry) Device() gpu.Device {
	return rg.dev
}

// DefaultTexture returns the 1x1 white texture used when a material has
// no albedo. It is the same pointer for the life of the registry.
func (rg *Registry) DefaultTexture() *Texture {
	return rg.defaultTexture
}

// DefaultShader returns the built-in lit, textured shader.
// It is the same pointer for the life of the registry.
func (rg *Registry) DefaultShader() *Shader {
	return rg.defaultShader
}

// QuadShader returns the built-in shader for full-screen texture blits.
func (rg *Registry) QuadShader() *Shader {
	return rg.quadShader
}

// AddShader compiles a program from the given sources and registers it
// under name, replacing (and freeing) any previous shader of that name.
func (rg *Registry) AddShader(name, vertex, fragment string) (*Shader, error) {
	p, err := rg.dev.NewProgram(name, vertex, fragment)
	if err != nil {
		return nil, fmt.Errorf("assets: shader %q: %w", name, err)
	}
	if old, ok := rg.shaders.ValueByKeyTry(name); ok {
		rg.dev.DeleteProgram(old.Program)
	}
	sh := &Shader{Name: name, Program: p}
	rg.shaders.Add(name, sh)
	return sh, nil
}

// Shader returns the shader registered under name, or nil.
func (rg *Registry) Shader(name string) *Shader {
	sh, _ := rg.shaders.ValueByKeyTry(name)
	return sh
}

// Close frees every resource the registry owns. The registry must not
// be used afterward.
func (rg *Registry) Close() {
	for _, kv := range rg.meshes.Order {
		kv.Value.free(rg.dev)
	}
	rg.meshes.Reset()
	for _, kv := range rg.textures.Order {
		rg.dev.DeleteTexture(kv.Value.Handle)
	}
	rg.textures.Reset()
	if rg.defaultTexture != nil {
		rg.dev.DeleteTexture(rg.defaultTexture.Handle)
	}
	for _, kv := range rg.shaders.Order {
		rg.dev.DeleteProgram(kv.Value.Program)
	}
	rg.shaders.Reset()
	slog.Debug("asset registry closed")
}
