// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/openrenderer/gpu"
)

// Decoder parses a 3D model file into mesh data.
// This interface is implemented by the different format-specific decoders,
// which are registered in [Registry.Decoders] by file extension.
type Decoder interface {

	// New returns a new instance of the decoder for one decoding.
	New() Decoder

	// Desc returns the description of this decoder.
	Desc() string

	// Decode reads the given data and decodes it into mesh data,
	// one entry per object in the file.
	Decode(r io.Reader) ([]MeshData, error)
}

// MeshData is decoded, CPU-side triangle mesh data.
// Positions have PosSize values per vertex, Normals 3 and TexCoords 2.
type MeshData struct {
	Name string

	// PosSize is the number of values per position, 3 if zero.
	PosSize int32

	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indexes   []uint32
}

// NumVertices returns the number of vertices.
func (md *MeshData) NumVertices() int {
	return len(md.Positions) / int(md.posSize())
}

func (md *MeshData) posSize() int32 {
	if md.PosSize == 0 {
		return 3
	}
	return md.PosSize
}

// Mesh is a triangle mesh uploaded to the device.
type Mesh struct {
	Name        string
	VertexArray gpu.VertexArray
	IndexBuffer gpu.Buffer
	IndexCount  int32

	buffers []gpu.Buffer
}

// meshSet is the meshes loaded from one file.
type meshSet struct {
	meshes []Mesh
	refs   int
}

func (ms *meshSet) free(dev gpu.Device) {
	for _, m := range ms.meshes {
		m.free(dev)
	}
	ms.meshes = nil
}

func (m *Mesh) free(dev gpu.Device) {
	dev.DeleteVertexArray(m.VertexArray)
	for _, b := range m.buffers {
		dev.DeleteBuffer(b)
	}
	dev.DeleteBuffer(m.IndexBuffer)
}

// NewMesh uploads the given mesh data. It is not cached by the registry;
// the caller owns the result and frees it with [Registry.FreeMesh].
func (rg *Registry) NewMesh(md *MeshData) Mesh {
	m := Mesh{Name: md.Name}
	m.VertexArray = rg.dev.NewVertexArray()
	attrib := func(data []float32, loc uint32, size int32) {
		if len(data) == 0 {
			return
		}
		b := rg.dev.NewVertexBuffer(data)
		rg.dev.VertexAttrib(m.VertexArray, b, gpu.Attrib{Location: loc, Size: size})
		m.buffers = append(m.buffers, b)
	}
	attrib(md.Positions, PositionLoc, md.posSize())
	attrib(md.Normals, NormalLoc, 3)
	attrib(md.TexCoords, TexCoordLoc, 2)
	rg.dev.BindVertexArray(m.VertexArray)
	m.IndexBuffer = rg.dev.NewIndexBuffer(md.Indexes)
	rg.dev.BindVertexArray(0)
	m.IndexCount = int32(len(md.Indexes))
	return m
}

// FreeMesh frees a mesh made with [Registry.NewMesh].
func (rg *Registry) FreeMesh(m Mesh) {
	m.free(rg.dev)
}

// DecodeFile decodes the given model file using a decoder based on
// the file extension.
func (rg *Registry) DecodeFile(path string) ([]MeshData, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dt, has := rg.Decoders[ext]
	if !has {
		return nil, fmt.Errorf("assets: file extension %q not found in Decoders list for file %s", ext, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mds, err := dt.New().Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decoding %s: %w", path, err)
	}
	return mds, nil
}

// Meshes returns the meshes for the given model file, loading them on
// first use, and adds a reference that must be given back with
// [Registry.ReleaseMeshes]. The returned slice is shared and must not
// be modified.
func (rg *Registry) Meshes(path string) ([]Mesh, error) {
	if ms, ok := rg.meshes.ValueByKeyTry(path); ok {
		ms.refs++
		return ms.meshes, nil
	}
	mds, err := rg.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	ms := &meshSet{refs: 1}
	for i := range mds {
		ms.meshes = append(ms.meshes, rg.NewMesh(&mds[i]))
	}
	rg.meshes.Add(path, ms)
	slog.Debug("loaded model", "path", path, "meshes", len(ms.meshes))
	return ms.meshes, nil
}

// RetainMeshes adds a reference to the already loaded meshes for path.
func (rg *Registry) RetainMeshes(path string) {
	if ms, ok := rg.meshes.ValueByKeyTry(path); ok {
		ms.refs++
	}
}

// ReleaseMeshes gives back a reference obtained from [Registry.Meshes],
// freeing the meshes when none remain.
func (rg *Registry) ReleaseMeshes(path string) {
	ms, ok := rg.meshes.ValueByKeyTry(path)
	if !ok {
		return
	}
	ms.refs--
	if ms.refs > 0 {
		return
	}
	ms.free(rg.dev)
	rg.meshes.DeleteKey(path)
	slog.Debug("freed model", "path", path)
}

// MeshRefs returns the number of references held on the meshes for path,
// and whether they are loaded.
func (rg *Registry) MeshRefs(path string) (int, bool) {
	ms, ok := rg.meshes.ValueByKeyTry(path)
	if !ok {
		return 0, false
	}
	return ms.refs, true
}
