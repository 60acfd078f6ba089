// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"cogentcore.org/openrenderer/gpu"
)

// Target is an offscreen color and depth framebuffer that a scene is
// rendered into, and whose color texture the UI shows as the viewport.
type Target struct {
	dev  gpu.Device
	fb   gpu.Framebuffer
	tex  gpu.Texture
	size image.Point
}

// NewTarget makes a new target of the given size.
func NewTarget(dev gpu.Device, width, height int) (*Target, error) {
	tg := &Target{dev: dev}
	if err := tg.alloc(width, height); err != nil {
		return nil, err
	}
	return tg, nil
}

func (tg *Target) alloc(width, height int) error {
	fb, tex, err := tg.dev.NewFramebuffer(int32(width), int32(height))
	if err != nil {
		return err
	}
	tg.fb, tg.tex = fb, tex
	tg.size = image.Pt(width, height)
	return nil
}

// Resize reallocates the target for a new size. The same size, or a
// zero or negative dimension, does nothing.
func (tg *Target) Resize(width, height int) error {
	if width <= 0 || height <= 0 || tg.size == image.Pt(width, height) {
		return nil
	}
	tg.free()
	return tg.alloc(width, height)
}

// Bind directs drawing into the target and sets the viewport to its size.
func (tg *Target) Bind() {
	tg.dev.BindFramebuffer(tg.fb)
	tg.dev.Viewport(0, 0, int32(tg.size.X), int32(tg.size.Y))
}

// Unbind directs drawing back to the window.
func (tg *Target) Unbind() {
	tg.dev.BindFramebuffer(0)
}

// Framebuffer returns the framebuffer handle.
func (tg *Target) Framebuffer() gpu.Framebuffer {
	return tg.fb
}

// Texture returns the color attachment, for display by the UI.
func (tg *Target) Texture() gpu.Texture {
	return tg.tex
}

// Size returns the size in pixels.
func (tg *Target) Size() image.Point {
	return tg.size
}

func (tg *Target) free() {
	if tg.fb != 0 {
		tg.dev.DeleteFramebuffer(tg.fb)
	}
	tg.fb, tg.tex = 0, 0
}

// Close frees the framebuffer.
func (tg *Target) Close() {
	tg.free()
	tg.size = image.Point{}
}
