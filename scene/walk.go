// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/gogpu/pick"
	"github.com/gogpu/pick/idcodec"
)

// DrawFunc rasterises m. asPoints selects point rendering; colorOf returns
// the id colour of point or cell i.
type DrawFunc func(m *Mesh, asPoints bool, colorOf func(i int) [3]byte)

// Validate checks every block of a.
func (a *Actor) Validate() error {
	for _, m := range a.Blocks {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Walk draws one selection pass of actors through draw.
//
// Every visible actor is announced to s with BeginRenderProp and
// EndRenderProp, so prop ids stay positional even for actors the ACTOR pass
// missed. Only hit actors are drawn in later passes. During the ACTOR pass
// Walk reports the largest ids first so s can decide on the HIGH24 passes.
func Walk(s *pick.Selector, pass pick.Pass, actors []*Actor, draw DrawFunc) {
	if pass == pick.PassActor {
		ReportMaxima(s, actors)
	}
	points := s.FieldAssociation() == pick.FieldAssociationPoints

	for _, a := range actors {
		if !a.Visible {
			continue
		}
		id := s.BeginRenderProp(a)
		if s.IsPropHit(id) {
			for _, m := range a.Blocks {
				s.RenderCompositeIndex(m.CompositeIndex)
				fromData := s.UseProcessIDFromData() && m.ProcessIDs != nil
				if !fromData {
					s.RenderProcessID(s.ProcessID())
				}
				asPoints := points || len(m.Cells) == 0
				draw(m, asPoints, func(i int) [3]byte {
					return PrimitiveColor(s, pass, m, i, asPoints, fromData)
				})
			}
		}
		s.EndRenderProp()
	}
}

// WalkVisible draws the visible blocks of actors in their display colour.
func WalkVisible(actors []*Actor, draw DrawFunc) {
	for _, a := range actors {
		if !a.Visible {
			continue
		}
		for _, m := range a.Blocks {
			c := [3]byte{m.Color.R, m.Color.G, m.Color.B}
			draw(m, len(m.Cells) == 0, func(int) [3]byte { return c })
		}
	}
}

// ReportMaxima tells s the largest point, cell and cell-grid tuple ids the
// actors can produce.
func ReportMaxima(s *pick.Selector, actors []*Actor) {
	for _, a := range actors {
		for _, m := range a.Blocks {
			s.UpdateMaximumPointID(m.MaxPointID())
			s.UpdateMaximumCellID(m.MaxCellID())
			s.UpdateMaximumCellGridTupleID(int64(max(len(m.Cells), len(m.Points))) - 1)
		}
	}
}

// PrimitiveColor returns the id colour of point or cell prim of m in pass.
// Point and cell passes carry local indices; Actor post-processing maps
// them through PointIDs and CellIDs.
func PrimitiveColor(s *pick.Selector, pass pick.Pass, m *Mesh, prim int, asPoints, fromData bool) [3]byte {
	switch pass {
	case pick.PassProcess:
		if !fromData {
			return s.PropColor()
		}
		p := prim
		if !asPoints {
			p = m.Cells[prim][0]
		}
		return pick.ProcessIDColor(m.ProcessIDs[p])
	case pick.PassPointIDLow24, pick.PassPointIDHigh24,
		pick.PassCellIDLow24, pick.PassCellIDHigh24,
		pick.PassCellGridTupleLow24, pick.PassCellGridTupleHigh24:
		return s.AttributeColor(int64(prim))
	case pick.PassCellGridTypeIndex:
		return idcodec.Color(uint64(m.CellGridType))
	case pick.PassCellGridSourceIndex:
		return idcodec.Color(uint64(m.CellGridSource))
	default:
		return s.PropColor()
	}
}
