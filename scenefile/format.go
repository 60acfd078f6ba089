// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenefile

// These types mirror the scene file layout:
//
//	Scene:
//	  - Name: Box
//	    Transform:
//	      Position: [1, 2, 3]
//	      Rotation: [0, 0, 0]
//	      Scale: [1, 1, 1]
//	    Model: models/box.obj
//	    Material:
//	      Albedo: textures/box.png
//	      Shader: default
//	    Camera:
//	      Primary: true

// SceneKey is the root key of a scene file.
const SceneKey = "Scene"

type fileScene struct {
	Scene []fileEntity `yaml:"Scene"`
}

type fileEntity struct {
	Name      *string        `yaml:"Name"`
	Transform *fileTransform `yaml:"Transform,omitempty"`
	Model     *string        `yaml:"Model,omitempty"`
	Material  *fileMaterial  `yaml:"Material,omitempty"`
	Camera    *fileCamera    `yaml:"Camera,omitempty"`
}

type fileTransform struct {
	Position *[3]float32 `yaml:"Position,flow"`
	Rotation *[3]float32 `yaml:"Rotation,flow"`
	Scale    *[3]float32 `yaml:"Scale,flow"`
}

type fileMaterial struct {
	Albedo string `yaml:"Albedo"`
	Shader string `yaml:"Shader"`
}

type fileCamera struct {
	Primary bool `yaml:"Primary"`
}
