// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ObjDecoder decodes the Wavefront OBJ format (*.obj).
// Only geometry is read: positions, texture coordinates, normals and
// polygon faces, which are fan triangulated. Each o or g line starts a
// new mesh. Materials (mtllib, usemtl) are ignored.
type ObjDecoder struct {
	positions []float32
	normals   []float32
	uvs       []float32
	objects   []*objObject
	current   *objObject
	line      int
}

// objObject accumulates one output mesh. Vertices are deduplicated by
// their position/uv/normal index triple.
type objObject struct {
	md    MeshData
	index map[[3]int]uint32
}

const invIndex = -1

func (dec *ObjDecoder) New() Decoder {
	return &ObjDecoder{}
}

func (dec *ObjDecoder) Desc() string {
	return ".obj = Wavefront OBJ format, geometry only"
}

func (dec *ObjDecoder) Decode(r io.Reader) ([]MeshData, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		dec.line++
		if err := dec.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	var mds []MeshData
	for _, ob := range dec.objects {
		if len(ob.md.Indexes) == 0 {
			continue
		}
		mds = append(mds, ob.md)
	}
	if len(mds) == 0 {
		return nil, errors.New("obj: no faces")
	}
	return mds, nil
}

func (dec *ObjDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "o", "g":
		name := "unnamed"
		if len(fields) > 1 {
			name = fields[1]
		}
		dec.newObject(name)
	case "v":
		return dec.parseFloats(fields[1:], 3, &dec.positions)
	case "vn":
		return dec.parseFloats(fields[1:], 3, &dec.normals)
	case "vt":
		return dec.parseFloats(fields[1:], 2, &dec.uvs)
	case "f":
		return dec.parseFace(fields[1:])
	}
	return nil
}

func (dec *ObjDecoder) newObject(name string) {
	ob := &objObject{md: MeshData{Name: name}, index: map[[3]int]uint32{}}
	dec.objects = append(dec.objects, ob)
	dec.current = ob
}

func (dec *ObjDecoder) parseFloats(fields []string, n int, dst *[]float32) error {
	if len(fields) < n {
		return dec.formatError(fmt.Sprintf("need %d values, have %d", n, len(fields)))
	}
	for _, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError(err.Error())
		}
		*dst = append(*dst, float32(val))
	}
	return nil
}

// parseIndex parses one 1-based (or negative, relative) OBJ index
// into a 0-based index into a list of count items.
func (dec *ObjDecoder) parseIndex(s string, count int) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	var idx int
	switch {
	case val > 0:
		idx = val - 1
	case val < 0:
		idx = count + val
	default:
		return 0, dec.formatError("index value equal to 0")
	}
	if idx < 0 || idx >= count {
		return 0, dec.formatError(fmt.Sprintf("index %d out of range", val))
	}
	return idx, nil
}

// parseFace parses a face line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *ObjDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("face line with less than 3 fields")
	}
	if dec.current == nil {
		dec.newObject("unnamed")
	}
	ob := dec.current
	verts := make([]uint32, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		key := [3]int{invIndex, invIndex, invIndex}
		var err error
		key[0], err = dec.parseIndex(parts[0], len(dec.positions)/3)
		if err != nil {
			return err
		}
		if len(parts) > 1 && parts[1] != "" {
			key[1], err = dec.parseIndex(parts[1], len(dec.uvs)/2)
			if err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			key[2], err = dec.parseIndex(parts[2], len(dec.normals)/3)
			if err != nil {
				return err
			}
		}
		verts[i] = ob.vertex(dec, key)
	}
	for i := 1; i+1 < len(verts); i++ {
		ob.md.Indexes = append(ob.md.Indexes, verts[0], verts[i], verts[i+1])
	}
	return nil
}

// vertex returns the output index for the given index triple, adding a
// vertex if needed. Missing normals and uvs are written as zeros.
func (ob *objObject) vertex(dec *ObjDecoder, key [3]int) uint32 {
	if vi, ok := ob.index[key]; ok {
		return vi
	}
	vi := uint32(ob.md.NumVertices())
	p := key[0] * 3
	ob.md.Positions = append(ob.md.Positions, dec.positions[p:p+3]...)
	if key[1] != invIndex {
		t := key[1] * 2
		ob.md.TexCoords = append(ob.md.TexCoords, dec.uvs[t:t+2]...)
	} else {
		ob.md.TexCoords = append(ob.md.TexCoords, 0, 0)
	}
	if key[2] != invIndex {
		n := key[2] * 3
		ob.md.Normals = append(ob.md.Normals, dec.normals[n:n+3]...)
	} else {
		ob.md.Normals = append(ob.md.Normals, 0, 0, 0)
	}
	ob.index[key] = vi
	return vi
}

func (dec *ObjDecoder) formatError(msg string) error {
	return fmt.Errorf("obj: line %d: %s", dec.line, msg)
}
