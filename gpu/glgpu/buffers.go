// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"cogentcore.org/openrenderer/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
)

func (d *Device) NewVertexBuffer(data []float32) gpu.Buffer {
	var h uint32
	gl.GenBuffers(1, &h)
	gl.BindBuffer(gl.ARRAY_BUFFER, h)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return gpu.Buffer(h)
}

func (d *Device) NewIndexBuffer(idxs []uint32) gpu.Buffer {
	var h uint32
	gl.GenBuffers(1, &h)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h)
	if len(idxs) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idxs)*4, gl.Ptr(idxs), gl.STATIC_DRAW)
	}
	return gpu.Buffer(h)
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	if b == 0 {
		return
	}
	h := uint32(b)
	gl.DeleteBuffers(1, &h)
}

func (d *Device) NewVertexArray() gpu.VertexArray {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return gpu.VertexArray(h)
}

func (d *Device) VertexAttrib(va gpu.VertexArray, b gpu.Buffer, at gpu.Attrib) {
	gl.BindVertexArray(uint32(va))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.EnableVertexAttribArray(at.Location)
	gl.VertexAttribPointerWithOffset(at.Location, at.Size, gl.FLOAT, false, 0, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) BindVertexArray(va gpu.VertexArray) {
	gl.BindVertexArray(uint32(va))
}

func (d *Device) DeleteVertexArray(va gpu.VertexArray) {
	if va == 0 {
		return
	}
	h := uint32(va)
	gl.DeleteVertexArrays(1, &h)
}

// BindIndexBuffer binds to the currently bound vertex array, which
// records the binding.
func (d *Device) BindIndexBuffer(b gpu.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
}
