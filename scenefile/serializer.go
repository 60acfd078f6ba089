// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenefile saves and loads scenes as YAML files.
//
// Loading never leaves the editor without a scene: [Serializer.Deserialize]
// falls back to [scene.NewDefault] on any error, with a warning, while
// [Serializer.Open] reports the error to callers that want it.
package scenefile

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/assets"
	"cogentcore.org/openrenderer/scene"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyPath is returned when loading with an empty file name.
	ErrEmptyPath = errors.New("scenefile: empty scene filename")

	// ErrNotFound is returned when the scene file does not exist.
	ErrNotFound = errors.New("scenefile: scene file not found")

	// ErrNoSceneKey is returned when the file has no top level Scene key.
	ErrNoSceneKey = errors.New("scenefile: file does not contain a 'Scene' node")
)

// Serializer saves and loads scenes, loading assets through a registry.
type Serializer struct {
	assets *assets.Registry
}

// New returns a serializer that loads assets through reg.
func New(reg *assets.Registry) *Serializer {
	return &Serializer{assets: reg}
}

// Assets returns the registry that loaded scenes use.
func (sr *Serializer) Assets() *assets.Registry {
	return sr.assets
}

// Marshal encodes every named entity of sc, in name attachment order.
func (sr *Serializer) Marshal(sc *scene.Scene) ([]byte, error) {
	fs := fileScene{Scene: []fileEntity{}}
	for _, e := range scene.EntitiesWith[scene.Name](sc) {
		name := scene.MustGet[scene.Name](sc, e).Name
		fe := fileEntity{Name: &name}
		if t, err := scene.GetComponent[scene.Transform](sc, e); err == nil {
			pos, rot, scl := [3]float32(t.Position), [3]float32(t.Rotation), [3]float32(t.Scale)
			fe.Transform = &fileTransform{Position: &pos, Rotation: &rot, Scale: &scl}
		}
		if m, err := scene.GetComponent[scene.Model](sc, e); err == nil {
			file := m.File
			fe.Model = &file
		}
		if m, err := scene.GetComponent[scene.Material](sc, e); err == nil {
			fe.Material = &fileMaterial{Albedo: m.AlbedoPath(), Shader: m.ShaderName()}
		}
		if c, err := scene.GetComponent[scene.Camera](sc, e); err == nil {
			fe.Camera = &fileCamera{Primary: c.Primary}
		}
		fs.Scene = append(fs.Scene, fe)
	}
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(&fs); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Serialize writes sc to the given file. Errors are logged and returned.
func (sr *Serializer) Serialize(sc *scene.Scene, path string) error {
	b, err := sr.Marshal(sc)
	if err != nil {
		return errors.Log(fmt.Errorf("scenefile: encoding scene %q: %w", sc.Name(), err))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Log(err)
		}
	}
	if err := os.WriteFile(path, b, 0666); err != nil {
		return errors.Log(err)
	}
	slog.Info("saved scene", "scene", sc.Name(), "path", path, "entities", sc.Len())
	return nil
}

// Deserialize loads the scene in the given file. It never fails: on any
// error it logs a warning and returns the default scene.
func (sr *Serializer) Deserialize(path string) *scene.Scene {
	sc, err := sr.Open(path)
	if err != nil {
		slog.Warn("[Serializer] Falling back to default scene.", "path", path, "err", err)
		return scene.NewDefault(sr.assets)
	}
	return sc
}

// Open loads the scene in the given file, resolving a relative path
// with [ResolvePath]. The scene is named by path.
func (sr *Serializer) Open(path string) (*scene.Scene, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	resolved, ok := ResolvePath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, resolved)
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("scenefile: failed to load scene %q: %w", resolved, err)
	}
	sc, err := sr.Unmarshal(b, path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: failed to load scene %q: %w", resolved, err)
	}
	slog.Info("loaded scene", "path", resolved, "entities", sc.Len())
	return sc, nil
}

// Unmarshal decodes a scene from data, naming it name.
func (sr *Serializer) Unmarshal(data []byte, name string) (*scene.Scene, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	node := sceneNode(&root)
	if node == nil {
		return nil, ErrNoSceneKey
	}
	var fes []fileEntity
	if err := node.Decode(&fes); err != nil {
		return nil, err
	}

	var albedos []string
	for _, fe := range fes {
		if fe.Material != nil && fe.Material.Albedo != "" {
			albedos = append(albedos, fe.Material.Albedo)
		}
	}
	if err := sr.assets.Preload(albedos); err != nil {
		slog.Warn("could not preload all textures", "err", err)
	}

	sc := scene.New(name, sr.assets)
	for i := range fes {
		sr.addEntity(sc, &fes[i])
	}
	// textures of skipped entities were preloaded but never taken
	sr.assets.Unload(albedos)
	return sc, nil
}

// sceneNode returns the value node of the top level Scene key, or nil.
// A null value is returned as an empty sequence.
func sceneNode(root *yaml.Node) *yaml.Node {
	doc := root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != SceneKey {
			continue
		}
		v := doc.Content[i+1]
		if v.ShortTag() == "!!null" {
			return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		}
		return v
	}
	return nil
}

func vec3(v *[3]float32, def mgl32.Vec3) mgl32.Vec3 {
	if v == nil {
		return def
	}
	return mgl32.Vec3(*v)
}

func (sr *Serializer) addEntity(sc *scene.Scene, fe *fileEntity) {
	if fe.Name == nil {
		slog.Warn("skipping scene entity without a Name", "scene", sc.Name())
		return
	}
	e := sc.CreateEntity(*fe.Name)
	if e == scene.Null {
		slog.Warn("skipping scene entity with a duplicate Name", "scene", sc.Name(), "name", *fe.Name)
		return
	}
	tr := scene.NewTransform()
	if ft := fe.Transform; ft != nil {
		tr.Position = vec3(ft.Position, mgl32.Vec3{})
		tr.Rotation = vec3(ft.Rotation, mgl32.Vec3{})
		tr.Scale = vec3(ft.Scale, mgl32.Vec3{1, 1, 1})
		scene.AddComponent(sc, e, tr)
	}
	if fe.Model != nil {
		m, err := scene.LoadModel(sr.assets, *fe.Model)
		if err != nil {
			slog.Warn("could not load model", "entity", *fe.Name, "path", *fe.Model, "err", err)
		}
		scene.AddComponent(sc, e, m)
	}
	if fm := fe.Material; fm != nil {
		// the serialized shader name is not honored, only the default shader
		tex := sr.assets.TextureOrDefault(fm.Albedo)
		name := assets.DefaultName
		if fm.Albedo != "" {
			name = filepath.Base(fm.Albedo)
		}
		scene.AddComponent(sc, e, scene.Material{Albedo: tex, Shader: sr.assets.DefaultShader(), Name: name, AlbedoFile: fm.Albedo})
	}
	if fc := fe.Camera; fc != nil {
		cam := scene.AddComponent(sc, e, scene.NewCamera(fc.Primary))
		cam.UpdateView(tr)
	}
}
