// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/openrenderer/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

func compileShader(name string, typ uint32, src string) (uint32, error) {
	handle := gl.CreateShader(typ)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csrc, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("glgpu: shader %q failed to compile: %s", name, strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

func (d *Device) NewProgram(name, vertex, fragment string) (gpu.Program, error) {
	vs, err := compileShader(name+".vert", gl.VERTEX_SHADER, vertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(name+".frag", gl.FRAGMENT_SHADER, fragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vs)
	gl.AttachShader(handle, fs)
	gl.LinkProgram(handle)
	gl.DetachShader(handle, vs)
	gl.DetachShader(handle, fs)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var lgLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &lgLength)
		lg := strings.Repeat("\x00", int(lgLength+1))
		gl.GetProgramInfoLog(handle, lgLength, nil, gl.Str(lg))
		gl.DeleteProgram(handle)
		return 0, fmt.Errorf("glgpu: program %q failed to link: %s", name, strings.TrimRight(lg, "\x00"))
	}
	p := gpu.Program(handle)
	d.locs[p] = make(map[string]int32)
	return p, nil
}

func (d *Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) DeleteProgram(p gpu.Program) {
	if p == 0 {
		return
	}
	gl.DeleteProgram(uint32(p))
	delete(d.locs, p)
}

// location returns the uniform location for the given name, caching it.
// Unknown uniforms are logged once and return -1, which GL ignores.
func (d *Device) location(p gpu.Program, name string) int32 {
	locs, ok := d.locs[p]
	if !ok {
		locs = make(map[string]int32)
		d.locs[p] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		slog.Debug("glgpu: uniform not found", "program", p, "name", name)
	}
	locs[name] = loc
	return loc
}

// The Set methods assume p is the current program.

func (d *Device) SetMat4(p gpu.Program, name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(d.location(p, name), 1, false, &m[0])
}

func (d *Device) SetVec3(p gpu.Program, name string, v mgl32.Vec3) {
	gl.Uniform3fv(d.location(p, name), 1, &v[0])
}

func (d *Device) SetFloat(p gpu.Program, name string, v float32) {
	gl.Uniform1f(d.location(p, name), v)
}

func (d *Device) SetInt(p gpu.Program, name string, v int32) {
	gl.Uniform1i(d.location(p, name), v)
}
