// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu implements [gpu.Device] on OpenGL 3.3 core.
//
// The caller must create a GL context (e.g. with glfw), make it current,
// and call [Init] on that thread before using the device.
package glgpu

import (
	"fmt"
	"log/slog"

	"cogentcore.org/openrenderer/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Device is the OpenGL implementation of [gpu.Device].
type Device struct {

	// uniform locations per program, looked up lazily
	locs map[gpu.Program]map[string]int32

	// depth renderbuffers per framebuffer
	depth map[gpu.Framebuffer]uint32

	// color textures per framebuffer
	color map[gpu.Framebuffer]gpu.Texture
}

var _ gpu.Device = (*Device)(nil)

// Init initializes the GL function pointers for the current context
// and returns a new device.
func Init() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glgpu: gl.Init failed: %w", err)
	}
	slog.Info("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)), "renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{
		locs:  make(map[gpu.Program]map[string]int32),
		depth: make(map[gpu.Framebuffer]uint32),
		color: make(map[gpu.Framebuffer]gpu.Texture),
	}, nil
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(color, depth bool) {
	var bits uint32
	if color {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) DepthTest(on bool) {
	if on {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (d *Device) PolygonOffset(factor, units float32) {
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(factor, units)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) DrawIndexed(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}
