// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene holds the pickable geometry shared by the renderers.
//
// An [Actor] is one drawable from the selector's point of view: it gets one
// prop id per pass and may be made of several [Mesh] blocks told apart by
// their composite index.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/idcodec"
	"golang.org/x/image/math/f64"
)

// Mesh errors.
var (
	// ErrBadCell is returned when a cell references a missing point.
	ErrBadCell = errors.New("scene: cell references missing point")

	// ErrBadAttribute is returned when a per-point array has the wrong length.
	ErrBadAttribute = errors.New("scene: per-point array length mismatch")
)

// Mesh is a triangle mesh. Without cells it is a point cloud.
type Mesh struct {
	// Points are positions in scene units. Renderers map them to display
	// pixels with their view transform.
	Points []f64.Vec2

	// Depth holds one value in [0, 1] per point, 0 nearest. Nil means 0.5
	// everywhere.
	Depth []float32

	// Cells are triangles as point indices.
	Cells [][3]int

	// CompositeIndex identifies the mesh inside its actor.
	CompositeIndex uint32

	// PointIDs and CellIDs translate local point and cell indices into
	// global ids. Nil means the local index is the id.
	PointIDs []int64
	CellIDs  []int64

	// ProcessIDs holds the owning process of every point. It is used when
	// the selector takes process ids from data; a cell belongs to the
	// process of its first point.
	ProcessIDs []int

	// CellGridType and CellGridSource are reported in the cell-grid passes.
	CellGridType   uint32
	CellGridSource uint32

	// Color is the visible colour renderers draw outside selections.
	Color color.RGBA

	// PointSize is the side of the square drawn per point, at least 1.
	PointSize int
}

// Validate checks that cells and per-point arrays match the points.
func (m *Mesh) Validate() error {
	n := len(m.Points)
	for i, c := range m.Cells {
		for _, p := range c {
			if p < 0 || p >= n {
				return fmt.Errorf("%w: cell %d point %d of %d", ErrBadCell, i, p, n)
			}
		}
	}
	if m.Depth != nil && len(m.Depth) != n {
		return fmt.Errorf("%w: depth has %d values for %d points", ErrBadAttribute, len(m.Depth), n)
	}
	if m.ProcessIDs != nil && len(m.ProcessIDs) != n {
		return fmt.Errorf("%w: process ids has %d values for %d points", ErrBadAttribute, len(m.ProcessIDs), n)
	}
	return nil
}

// DepthAt returns the depth of point i.
func (m *Mesh) DepthAt(i int) float32 {
	if m.Depth == nil {
		return 0.5
	}
	return m.Depth[i]
}

// MaxPointID returns the largest point id the mesh can produce, -1 if none.
func (m *Mesh) MaxPointID() int64 {
	return maxID(len(m.Points), m.PointIDs)
}

// MaxCellID returns the largest cell id the mesh can produce, -1 if none.
func (m *Mesh) MaxCellID() int64 {
	return maxID(len(m.Cells), m.CellIDs)
}

func maxID(n int, ids []int64) int64 {
	m := int64(n) - 1
	for _, id := range ids {
		m = max(m, id)
	}
	return m
}

// Actor is one pickable drawable made of one or more meshes.
type Actor struct {
	Name    string
	Blocks  []*Mesh
	Visible bool
}

// NewActor returns a visible actor drawing blocks.
func NewActor(blocks ...*Mesh) *Actor {
	return &Actor{Blocks: blocks, Visible: true}
}

// String returns the actor name.
func (a *Actor) String() string {
	if a.Name == "" {
		return fmt.Sprintf("actor(%d blocks)", len(a.Blocks))
	}
	return a.Name
}

// Block returns the mesh with the given composite index. A single-block
// actor returns its only block for any index.
func (a *Actor) Block(composite uint32) *Mesh {
	if len(a.Blocks) == 1 {
		return a.Blocks[0]
	}
	for _, m := range a.Blocks {
		if m.CompositeIndex == composite {
			return m
		}
	}
	return nil
}

// ProcessSelectorPixelBuffers translates the local indices the renderer
// wrote in the point and cell passes into global ids for blocks that
// carry PointIDs or CellIDs. A local index needs both chunks, so when the
// HIGH24 pass is required the LOW24 buffer is rewritten together with it.
func (a *Actor) ProcessSelectorPixelBuffers(s *pick.Selector, pass pick.Pass, pixels []int) {
	var low, high pick.Pass
	var table func(m *Mesh) []int64
	switch pass {
	case pick.PassPointIDLow24, pick.PassPointIDHigh24:
		low, high = pick.PassPointIDLow24, pick.PassPointIDHigh24
		table = func(m *Mesh) []int64 { return m.PointIDs }
	case pick.PassCellIDLow24, pick.PassCellIDHigh24:
		low, high = pick.PassCellIDLow24, pick.PassCellIDHigh24
		table = func(m *Mesh) []int64 { return m.CellIDs }
	default:
		return
	}
	if pass == low && s.IsPassRequired(high) {
		return
	}

	for _, i := range pixels {
		m := a.Block(s.RawPixel(pick.PassCompositeIndex, i))
		if m == nil {
			continue
		}
		ids := table(m)
		if ids == nil {
			continue
		}
		local := idcodec.Compose(s.RawPixel(low, i), s.RawPixel(high, i), 0)
		if local >= uint64(len(ids)) || ids[local] < 0 {
			continue
		}
		lo, hi := idcodec.Split(uint64(ids[local]))
		s.SetProcessedPixel(low, i, uint64(lo))
		if pass == high {
			s.SetProcessedPixel(high, i, uint64(hi))
		}
	}
}

// Ensure Actor implements pick.PixelProcessor.
var _ pick.PixelProcessor = (*Actor)(nil)
