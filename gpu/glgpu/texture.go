// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/openrenderer/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
)

func (d *Device) NewTexture(img *image.RGBA) gpu.Texture {
	var h uint32
	gl.GenTextures(1, &h)
	gl.BindTexture(gl.TEXTURE_2D, h)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	sz := img.Bounds().Size()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(sz.X), int32(sz.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gpu.Texture(h)
}

func (d *Device) BindTexture(unit int32, t gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	if t == 0 {
		return
	}
	h := uint32(t)
	gl.DeleteTextures(1, &h)
}

func (d *Device) NewFramebuffer(width, height int32) (gpu.Framebuffer, gpu.Texture, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("glgpu: invalid framebuffer size %dx%d", width, height)
	}
	var fbo, tex, drbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)

	gl.GenRenderbuffers(1, &drbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, drbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, drbo)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteRenderbuffers(1, &drbo)
		gl.DeleteTextures(1, &tex)
		gl.DeleteFramebuffers(1, &fbo)
		return 0, 0, errors.New("glgpu: framebuffer is not complete")
	}
	fb := gpu.Framebuffer(fbo)
	d.depth[fb] = drbo
	d.color[fb] = gpu.Texture(tex)
	return fb, gpu.Texture(tex), nil
}

func (d *Device) BindFramebuffer(fb gpu.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
}

func (d *Device) DeleteFramebuffer(fb gpu.Framebuffer) {
	if fb == 0 {
		return
	}
	if drbo, ok := d.depth[fb]; ok {
		gl.DeleteRenderbuffers(1, &drbo)
		delete(d.depth, fb)
	}
	if tex, ok := d.color[fb]; ok {
		d.DeleteTexture(tex)
		delete(d.color, fb)
	}
	h := uint32(fb)
	gl.DeleteFramebuffers(1, &h)
}
