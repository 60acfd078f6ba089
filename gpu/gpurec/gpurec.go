// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpurec provides a [gpu.Device] that records every call
// instead of talking to a graphics driver. It is used by tests and
// for headless runs.
package gpurec

import (
	"fmt"
	"image"
	"strings"

	"cogentcore.org/openrenderer/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded device call.
type Call struct {
	// Op is the name of the Device method, e.g. "DrawIndexed".
	Op string

	// Args are the arguments the method was called with.
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Uniform is a recorded uniform assignment.
type Uniform struct {
	Program gpu.Program
	Name    string
	Value   any
}

// Device records calls. Handles are allocated sequentially starting at 1
// and are never reused.
type Device struct {

	// Calls has every call in order.
	Calls []Call

	// Uniforms has every uniform assignment in order.
	Uniforms []Uniform

	// FailCompile makes NewProgram fail for programs with these names.
	FailCompile map[string]bool

	// Programs maps program handles to the names they were created with.
	Programs map[gpu.Program]string

	// Live is the set of handles that have been created and not deleted,
	// keyed by kind and handle, e.g. "texture:3".
	Live map[string]bool

	next uint32
}

var _ gpu.Device = (*Device)(nil)

// New returns a new recording device.
func New() *Device {
	return &Device{
		Programs: make(map[gpu.Program]string),
		Live:     make(map[string]bool),
	}
}

func (d *Device) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

func (d *Device) alloc(kind string) uint32 {
	d.next++
	if d.Live == nil {
		d.Live = make(map[string]bool)
	}
	d.Live[fmt.Sprintf("%s:%d", kind, d.next)] = true
	return d.next
}

func (d *Device) free(kind string, h uint32) {
	delete(d.Live, fmt.Sprintf("%s:%d", kind, h))
}

// Reset forgets recorded calls and uniforms, keeping handle state.
func (d *Device) Reset() {
	d.Calls = nil
	d.Uniforms = nil
}

// Ops returns the names of recorded calls, optionally restricted to
// those with one of the given names.
func (d *Device) Ops(only ...string) []string {
	var ops []string
	for _, c := range d.Calls {
		if len(only) > 0 && !contains(only, c.Op) {
			continue
		}
		ops = append(ops, c.Op)
	}
	return ops
}

// Count returns the number of recorded calls with the given name.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Find returns all recorded calls with the given name.
func (d *Device) Find(op string) []Call {
	var cs []Call
	for _, c := range d.Calls {
		if c.Op == op {
			cs = append(cs, c)
		}
	}
	return cs
}

// UniformValues returns the recorded values of the named uniform, in order.
func (d *Device) UniformValues(name string) []any {
	var vs []any
	for _, u := range d.Uniforms {
		if u.Name == name {
			vs = append(vs, u.Value)
		}
	}
	return vs
}

// LiveCount returns the number of live handles of the given kind
// ("buffer", "vertexarray", "program", "texture", "framebuffer").
func (d *Device) LiveCount(kind string) int {
	n := 0
	for k := range d.Live {
		if strings.HasPrefix(k, kind+":") {
			n++
		}
	}
	return n
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

func (d *Device) ClearColor(r, g, b, a float32) { d.record("ClearColor", r, g, b, a) }

func (d *Device) Clear(color, depth bool) { d.record("Clear", color, depth) }

func (d *Device) DepthTest(on bool) { d.record("DepthTest", on) }

func (d *Device) PolygonOffset(factor, units float32) { d.record("PolygonOffset", factor, units) }

func (d *Device) Viewport(x, y, width, height int32) { d.record("Viewport", x, y, width, height) }

func (d *Device) NewVertexBuffer(data []float32) gpu.Buffer {
	b := gpu.Buffer(d.alloc("buffer"))
	d.record("NewVertexBuffer", b, len(data))
	return b
}

func (d *Device) NewIndexBuffer(idxs []uint32) gpu.Buffer {
	b := gpu.Buffer(d.alloc("buffer"))
	d.record("NewIndexBuffer", b, len(idxs))
	return b
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	d.free("buffer", uint32(b))
	d.record("DeleteBuffer", b)
}

func (d *Device) NewVertexArray() gpu.VertexArray {
	va := gpu.VertexArray(d.alloc("vertexarray"))
	d.record("NewVertexArray", va)
	return va
}

func (d *Device) VertexAttrib(va gpu.VertexArray, b gpu.Buffer, at gpu.Attrib) {
	d.record("VertexAttrib", va, b, at)
}

func (d *Device) BindVertexArray(va gpu.VertexArray) { d.record("BindVertexArray", va) }

func (d *Device) DeleteVertexArray(va gpu.VertexArray) {
	d.free("vertexarray", uint32(va))
	d.record("DeleteVertexArray", va)
}

func (d *Device) BindIndexBuffer(b gpu.Buffer) { d.record("BindIndexBuffer", b) }

func (d *Device) NewProgram(name, vertex, fragment string) (gpu.Program, error) {
	if d.FailCompile[name] {
		d.record("NewProgram", name, gpu.Program(0))
		return 0, fmt.Errorf("gpurec: program %q: forced compile failure", name)
	}
	p := gpu.Program(d.alloc("program"))
	if d.Programs == nil {
		d.Programs = make(map[gpu.Program]string)
	}
	d.Programs[p] = name
	d.record("NewProgram", name, p)
	return p, nil
}

func (d *Device) UseProgram(p gpu.Program) { d.record("UseProgram", p) }

func (d *Device) DeleteProgram(p gpu.Program) {
	d.free("program", uint32(p))
	d.record("DeleteProgram", p)
}

func (d *Device) uniform(p gpu.Program, name string, v any) {
	d.Uniforms = append(d.Uniforms, Uniform{Program: p, Name: name, Value: v})
}

func (d *Device) SetMat4(p gpu.Program, name string, m mgl32.Mat4) {
	d.uniform(p, name, m)
	d.record("SetMat4", p, name)
}

func (d *Device) SetVec3(p gpu.Program, name string, v mgl32.Vec3) {
	d.uniform(p, name, v)
	d.record("SetVec3", p, name)
}

func (d *Device) SetFloat(p gpu.Program, name string, v float32) {
	d.uniform(p, name, v)
	d.record("SetFloat", p, name)
}

func (d *Device) SetInt(p gpu.Program, name string, v int32) {
	d.uniform(p, name, v)
	d.record("SetInt", p, name)
}

func (d *Device) NewTexture(img *image.RGBA) gpu.Texture {
	t := gpu.Texture(d.alloc("texture"))
	d.record("NewTexture", t, img.Bounds().Size())
	return t
}

func (d *Device) BindTexture(unit int32, t gpu.Texture) { d.record("BindTexture", unit, t) }

func (d *Device) DeleteTexture(t gpu.Texture) {
	d.free("texture", uint32(t))
	d.record("DeleteTexture", t)
}

func (d *Device) NewFramebuffer(width, height int32) (gpu.Framebuffer, gpu.Texture, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("gpurec: invalid framebuffer size %dx%d", width, height)
	}
	fb := gpu.Framebuffer(d.alloc("framebuffer"))
	t := gpu.Texture(d.alloc("texture"))
	d.record("NewFramebuffer", fb, t, width, height)
	return fb, t, nil
}

func (d *Device) BindFramebuffer(fb gpu.Framebuffer) { d.record("BindFramebuffer", fb) }

// DeleteFramebuffer frees the framebuffer. The color texture allocated
// with it is the next handle, matching NewFramebuffer.
func (d *Device) DeleteFramebuffer(fb gpu.Framebuffer) {
	d.free("framebuffer", uint32(fb))
	d.free("texture", uint32(fb)+1)
	d.record("DeleteFramebuffer", fb)
}

func (d *Device) DrawIndexed(count int32) { d.record("DrawIndexed", count) }
