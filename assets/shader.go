// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import "cogentcore.org/openrenderer/gpu"

// QuadName is the name of the built-in full-screen quad shader.
const QuadName = "quad"

// Vertex attribute locations used by meshes and the built-in shaders.
const (
	PositionLoc = 0
	NormalLoc   = 1
	TexCoordLoc = 2
)

// Shader is a linked shader program.
type Shader struct {
	Name    string
	Program gpu.Program
}

const defaultVertex = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vPos = world.xyz;
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
	vTexCoord = aTexCoord;
	gl_Position = uProjection * uView * world;
}
`

const defaultFragment = `#version 330 core
in vec3 vPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uLightColor;
uniform vec3 uLightPos;
uniform float uLightIntensity;
uniform vec3 uAmbientLight;

out vec4 FragColor;

void main() {
	vec4 albedo = texture(uTexture, vTexCoord);
	vec3 n = normalize(vNormal);
	vec3 l = normalize(uLightPos - vPos);
	float diff = max(dot(n, l), 0.0);
	vec3 light = uAmbientLight + diff * uLightColor * uLightIntensity;
	FragColor = vec4(albedo.rgb * light, albedo.a);
}
`

const quadVertex = `#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 2) in vec2 aTexCoord;

out vec2 vTexCoord;

void main() {
	vTexCoord = aTexCoord;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const quadFragment = `#version 330 core
in vec2 vTexCoord;

uniform sampler2D uTexture;

out vec4 FragColor;

void main() {
	FragColor = texture(uTexture, vTexCoord);
}
`
