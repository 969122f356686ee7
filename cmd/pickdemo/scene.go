package main

import (
	"fmt"
	"image/color"

	"github.com/gogpu/pick/backend"
	"github.com/gogpu/pick/scene"
	"golang.org/x/image/math/f64"
)

// buildScene adds cols x rows tiles covering a width x height viewport to
// b, with a one-pixel gap between them. Every tile is an actor with two
// cells whose global ids continue from the previous tile, and every second
// tile is split into two blocks. Tiles further right lie deeper.
func buildScene(b backend.Backend, width, height, cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("pickdemo: invalid grid %dx%d", cols, rows)
	}
	tw := float64(width) / float64(cols)
	th := float64(height) / float64(rows)

	var next int64
	for row := range rows {
		for col := range cols {
			x0, y0 := float64(col)*tw, float64(row)*th
			x1, y1 := x0+tw-1, y0+th-1
			z := float32(col+1) / float32(cols+1)
			c := color.RGBA{R: uint8(40 + 200*col/cols), G: uint8(40 + 200*row/rows), B: 160, A: 0xff}

			var blocks []*scene.Mesh
			if (row+col)%2 == 1 {
				xm := (x0 + x1) / 2
				left := tile(x0, y0, xm, y1, z, c, &next)
				right := tile(xm, y0, x1, y1, z, c, &next)
				right.CompositeIndex = 1
				blocks = append(blocks, left, right)
			} else {
				blocks = append(blocks, tile(x0, y0, x1, y1, z, c, &next))
			}

			a := scene.NewActor(blocks...)
			a.Name = fmt.Sprintf("tile[%d,%d]", row, col)
			if err := b.Add(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// tile returns a two-cell quad whose cell ids start at *next.
func tile(x0, y0, x1, y1 float64, z float32, c color.RGBA, next *int64) *scene.Mesh {
	m := &scene.Mesh{
		Points:    []f64.Vec2{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}},
		Depth:     []float32{z, z, z, z},
		Cells:     [][3]int{{0, 1, 2}, {0, 2, 3}},
		CellIDs:   []int64{*next, *next + 1},
		Color:     c,
		PointSize: 1,
	}
	*next += 2
	return m
}
