// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"testing"

	"golang.org/x/image/math/f64"
)

func TestFillTriangleCoverage(t *testing.T) {
	a, b, c := f64.Vec2{0, 0}, f64.Vec2{4, 0}, f64.Vec2{0, 4}
	tests := []struct {
		name    string
		a, b, c f64.Vec2
		want    int
	}{
		{"clockwise", a, b, c, 10},
		{"counter-clockwise", a, c, b, 10},
		{"degenerate", a, b, f64.Vec2{8, 0}, 0},
		{"clipped", f64.Vec2{-4, -4}, f64.Vec2{6, -4}, f64.Vec2{-4, 6}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := 0
			fillTriangle(tt.a, tt.b, tt.c, 0, 0, 0, 8, 8, func(x, y int, z float32) {
				if x < 0 || y < 0 || x >= 8 || y >= 8 {
					t.Errorf("fragment (%d, %d) outside target", x, y)
				}
				got++
			})
			if got != tt.want {
				t.Errorf("covered %d pixels, want %d", got, tt.want)
			}
		})
	}
}

func TestFillTriangleDepth(t *testing.T) {
	var z00, z30 float32
	fillTriangle(f64.Vec2{0, 0}, f64.Vec2{4, 0}, f64.Vec2{0, 4}, 0, 1, 0, 8, 8, func(x, y int, z float32) {
		switch {
		case x == 0 && y == 0:
			z00 = z
		case x == 3 && y == 0:
			z30 = z
		}
	})
	if z00 >= z30 {
		t.Errorf("depth not interpolated towards the far vertex: z(0,0)=%v z(3,0)=%v", z00, z30)
	}
	if z30 != 0.875 {
		t.Errorf("z(3,0) = %v, want 0.875", z30)
	}
}

func TestFillPoint(t *testing.T) {
	tests := []struct {
		p    f64.Vec2
		size int
		want int
	}{
		{f64.Vec2{3.2, 3.7}, 1, 1},
		{f64.Vec2{3.2, 3.7}, 3, 9},
		{f64.Vec2{0, 0}, 3, 4},
		{f64.Vec2{3, 3}, 0, 1},
		{f64.Vec2{-5, 3}, 2, 0},
	}
	for _, tt := range tests {
		got := 0
		fillPoint(tt.p, tt.size, 8, 8, func(x, y int) { got++ })
		if got != tt.want {
			t.Errorf("fillPoint(%v, %d) covered %d, want %d", tt.p, tt.size, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	scale := f64.Aff3{2, 0, 1, 0, 3, -1}
	if got := apply(scale, f64.Vec2{1, 1}); got != (f64.Vec2{3, 2}) {
		t.Errorf("apply = %v, want [3 2]", got)
	}
	if got := apply(Identity, f64.Vec2{5, 6}); got != (f64.Vec2{5, 6}) {
		t.Errorf("identity apply = %v", got)
	}
}
