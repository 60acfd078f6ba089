// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the small graphics device interface that the
// renderer and asset registry draw through.
//
// The interface mirrors the subset of OpenGL 3.3 core that a forward
// renderer needs: buffers, vertex arrays, programs with named uniforms,
// 2D textures, offscreen framebuffers and indexed triangle draws.
// The concrete OpenGL implementation lives in [cogentcore.org/openrenderer/gpu/glgpu],
// and [cogentcore.org/openrenderer/gpu/gpurec] records calls for tests
// and headless use.
//
// All calls must be made on the thread that owns the graphics context.
// Resource errors are reported by the underlying API and are not
// checked per call, except where a method returns an error.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer is a handle to a vertex or index buffer. Zero is no buffer.
type Buffer uint32

// VertexArray is a handle to a vertex array object. Zero is no vertex array.
type VertexArray uint32

// Program is a handle to a linked shader program. Zero is no program.
type Program uint32

// Texture is a handle to a 2D texture. Zero is no texture.
type Texture uint32

// Framebuffer is a handle to an offscreen framebuffer.
// Zero is the default (window) framebuffer.
type Framebuffer uint32

// Attrib describes one float vertex attribute sourced from a buffer.
type Attrib struct {
	// Location is the shader attribute location.
	Location uint32

	// Size is the number of float32 components (1-4).
	Size int32
}

// Device is the set of graphics operations used by this module.
type Device interface {

	// ClearColor sets the color used by Clear for the color buffer.
	ClearColor(r, g, b, a float32)

	// Clear clears the color and / or depth buffers of the bound framebuffer.
	Clear(color, depth bool)

	// DepthTest turns depth testing on or off.
	DepthTest(on bool)

	// PolygonOffset enables polygon offset fill with the given factor and units.
	PolygonOffset(factor, units float32)

	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int32)

	// NewVertexBuffer uploads float32 vertex data into a new buffer.
	NewVertexBuffer(data []float32) Buffer

	// NewIndexBuffer uploads uint32 triangle indexes into a new buffer.
	NewIndexBuffer(idxs []uint32) Buffer

	// DeleteBuffer frees the given buffer.
	DeleteBuffer(b Buffer)

	// NewVertexArray makes a new vertex array object.
	NewVertexArray() VertexArray

	// VertexAttrib binds attribute data from the given buffer into the
	// vertex array, as tightly packed float32 values.
	VertexAttrib(va VertexArray, b Buffer, at Attrib)

	// BindVertexArray makes the given vertex array current.
	BindVertexArray(va VertexArray)

	// DeleteVertexArray frees the given vertex array.
	DeleteVertexArray(va VertexArray)

	// BindIndexBuffer binds the given index buffer to the current vertex array.
	BindIndexBuffer(b Buffer)

	// NewProgram compiles and links a program from vertex and fragment
	// source, returning the compile or link log as an error on failure.
	NewProgram(name, vertex, fragment string) (Program, error)

	// UseProgram makes the given program current.
	UseProgram(p Program)

	// DeleteProgram frees the given program.
	DeleteProgram(p Program)

	// SetMat4 sets the named mat4 uniform on the given program.
	SetMat4(p Program, name string, m mgl32.Mat4)

	// SetVec3 sets the named vec3 uniform on the given program.
	SetVec3(p Program, name string, v mgl32.Vec3)

	// SetFloat sets the named float uniform on the given program.
	SetFloat(p Program, name string, v float32)

	// SetInt sets the named int (or sampler) uniform on the given program.
	SetInt(p Program, name string, v int32)

	// NewTexture uploads the given image into a new RGBA 2D texture.
	NewTexture(img *image.RGBA) Texture

	// BindTexture binds the texture to the given texture unit.
	BindTexture(unit int32, t Texture)

	// DeleteTexture frees the given texture.
	DeleteTexture(t Texture)

	// NewFramebuffer makes an offscreen framebuffer of the given size with
	// an RGBA color texture and a depth renderbuffer.
	NewFramebuffer(width, height int32) (Framebuffer, Texture, error)

	// BindFramebuffer binds the given framebuffer (0 = window).
	BindFramebuffer(fb Framebuffer)

	// DeleteFramebuffer frees the framebuffer and its attachments.
	DeleteFramebuffer(fb Framebuffer)

	// DrawIndexed draws count indexes from the bound index buffer as triangles.
	DrawIndexed(count int32)
}
