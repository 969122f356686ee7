// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Identity is the identity view transform.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// apply maps v through the affine transform t.
func apply(t f64.Aff3, v f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		t[0]*v[0] + t[1]*v[1] + t[2],
		t[3]*v[0] + t[4]*v[1] + t[5],
	}
}

// orient is twice the signed area of the triangle (a, b, p).
func orient(a, b, p f64.Vec2) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// fillTriangle calls frag for every pixel of a w x h grid whose centre lies
// inside triangle abc or on its boundary, with the depth interpolated at
// the centre. Degenerate triangles cover nothing. Coverage is binary.
func fillTriangle(a, b, c f64.Vec2, za, zb, zc float32, w, h int, frag func(x, y int, z float32)) {
	area := orient(a, b, c)
	if area == 0 {
		return
	}

	x0 := max(int(math.Floor(min(a[0], b[0], c[0]))), 0)
	y0 := max(int(math.Floor(min(a[1], b[1], c[1]))), 0)
	x1 := min(int(math.Ceil(max(a[0], b[0], c[0]))), w-1)
	y1 := min(int(math.Ceil(max(a[1], b[1], c[1]))), h-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := f64.Vec2{float64(x) + 0.5, float64(y) + 0.5}
			wa := orient(b, c, p) / area
			wb := orient(c, a, p) / area
			wc := orient(a, b, p) / area
			if wa < 0 || wb < 0 || wc < 0 {
				continue
			}
			frag(x, y, float32(wa)*za+float32(wb)*zb+float32(wc)*zc)
		}
	}
}

// fillPoint calls frag for the size x size square centred on the pixel
// containing p, clipped to a w x h grid.
func fillPoint(p f64.Vec2, size, w, h int, frag func(x, y int)) {
	size = max(size, 1)
	cx, cy := int(math.Floor(p[0])), int(math.Floor(p[1]))
	x0, y0 := cx-(size-1)/2, cy-(size-1)/2
	for y := max(y0, 0); y < min(y0+size, h); y++ {
		for x := max(x0, 0); x < min(x0+size, w); x++ {
			frag(x, y)
		}
	}
}
