// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pick/scene"
	"golang.org/x/image/math/f64"
)

// idVertexStride is the byte size of one vertex: position (2 x f32) plus
// colour (4 x f32).
const idVertexStride = 24

// viewportUniformSize is the byte size of the Viewport uniform, padded to
// 16 bytes.
const viewportUniformSize = 16

// Identity is the view transform that leaves scene units as pixels.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

func transform(t f64.Aff3, v f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		t[0]*v[0] + t[1]*v[1] + t[2],
		t[3]*v[0] + t[4]*v[1] + t[5],
	}
}

// vertexBuffer accumulates id-coloured triangles in the layout of the id
// pipeline.
type vertexBuffer struct {
	data []byte
}

func (b *vertexBuffer) reset() { b.data = b.data[:0] }

// count returns the number of vertices written.
func (b *vertexBuffer) count() uint32 { return uint32(len(b.data) / idVertexStride) }

func (b *vertexBuffer) vertex(p f64.Vec2, c [4]float32) {
	var v [idVertexStride]byte
	binary.LittleEndian.PutUint32(v[0:], math.Float32bits(float32(p[0])))
	binary.LittleEndian.PutUint32(v[4:], math.Float32bits(float32(p[1])))
	for i, f := range c {
		binary.LittleEndian.PutUint32(v[8+i*4:], math.Float32bits(f))
	}
	b.data = append(b.data, v[:]...)
}

func (b *vertexBuffer) triangle(p0, p1, p2 f64.Vec2, c [4]float32) {
	b.vertex(p0, c)
	b.vertex(p1, c)
	b.vertex(p2, c)
}

// square writes the two triangles covering the size x size pixel block
// around p, matching the software renderer's point footprint.
func (b *vertexBuffer) square(p f64.Vec2, size int, c [4]float32) {
	size = max(size, 1)
	x0 := math.Floor(p[0]) - float64((size-1)/2)
	y0 := math.Floor(p[1]) - float64((size-1)/2)
	x1, y1 := x0+float64(size), y0+float64(size)
	b.triangle(f64.Vec2{x0, y0}, f64.Vec2{x1, y0}, f64.Vec2{x1, y1}, c)
	b.triangle(f64.Vec2{x0, y0}, f64.Vec2{x1, y1}, f64.Vec2{x0, y1}, c)
}

// mesh writes m through view, colouring primitive i with colorOf(i).
func (b *vertexBuffer) mesh(view f64.Aff3, m *scene.Mesh, asPoints bool, colorOf func(int) [3]byte) {
	pts := make([]f64.Vec2, len(m.Points))
	for i, p := range m.Points {
		pts[i] = transform(view, p)
	}
	if asPoints {
		for i, p := range pts {
			b.square(p, m.PointSize, IDColor(colorOf(i)))
		}
		return
	}
	for i, cell := range m.Cells {
		b.triangle(pts[cell[0]], pts[cell[1]], pts[cell[2]], IDColor(colorOf(i)))
	}
}

// viewportUniform encodes the Viewport uniform for a width x height target.
func viewportUniform(width, height int) []byte {
	buf := make([]byte, viewportUniformSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(height)))
	return buf
}
