package pick

import (
	"image"

	"github.com/gogpu/pick/idcodec"
)

// Select runs a complete pick over the configured area: it captures every
// required pass, decodes the whole area and releases the buffers.
func (s *Selector) Select() (*Selection, error) {
	if err := s.CaptureBuffers(); err != nil {
		return nil, err
	}
	defer s.ReleasePixBuffers()
	a := s.area
	return s.GenerateSelection(a.XMin, a.YMin, a.XMax, a.YMax), nil
}

// GenerateSelection decodes the rectangle spanned by two corners in display
// pixels, clipped to the capture area. Without captured buffers, or over
// background only, the selection is empty.
func (s *Selector) GenerateSelection(x1, y1, x2, y2 int) *Selection {
	sel := newSelection()
	r := NewArea(x1, y1, x2, y2).Intersect(s.area)
	if r.Empty() {
		return sel
	}
	for y := r.YMin; y <= r.YMax; y++ {
		for x := r.XMin; x <= r.XMax; x++ {
			s.accumulate(sel, x-s.area.XMin, y-s.area.YMin)
		}
	}
	return sel
}

// GeneratePolygonSelection decodes the pixels inside a closed polygon whose
// vertices are relative to the capture area origin. Pixels on the boundary
// count as inside, so the polygon of the area corners selects exactly
// what GenerateSelection of the area selects.
func (s *Selector) GeneratePolygonSelection(points []image.Point) *Selection {
	sel := newSelection()
	if len(points) < 3 {
		return sel
	}

	bounds := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bounds.Min.X = min(bounds.Min.X, p.X)
		bounds.Min.Y = min(bounds.Min.Y, p.Y)
		bounds.Max.X = max(bounds.Max.X, p.X)
		bounds.Max.Y = max(bounds.Max.Y, p.Y)
	}
	bounds.Max = bounds.Max.Add(image.Pt(1, 1))
	bounds = bounds.Intersect(image.Rect(0, 0, s.area.Width(), s.area.Height()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if insidePolygon(image.Pt(x, y), points) {
				s.accumulate(sel, x, y)
			}
		}
	}
	return sel
}

// GetPixelInformation decodes the pixel at pos in display coordinates.
// When pos shows background, the nearest non-background pixel within
// Chebyshev distance maxDist is used instead, preferring smaller distances
// and then row-major order. It returns the position actually decoded, or
// (-1, -1) together with an invalid result when nothing was found.
func (s *Selector) GetPixelInformation(pos image.Point, maxDist int) (PixelInformation, image.Point) {
	miss := image.Pt(-1, -1)
	if !s.area.Contains(pos.X, pos.Y) {
		return PixelInformation{ProcessID: -1, AttributeID: -1}, miss
	}
	origin := image.Pt(s.area.XMin, s.area.YMin)
	rel := pos.Sub(origin)

	for r := 0; r <= max(maxDist, 0); r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				p := rel.Add(image.Pt(dx, dy))
				if info := s.decodePixel(p.X, p.Y); info.Valid {
					return info, p.Add(origin)
				}
			}
		}
	}
	return PixelInformation{ProcessID: -1, AttributeID: -1}, miss
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// accumulate adds the pixel at (x, y), relative to the area, to sel.
func (s *Selector) accumulate(sel *Selection, x, y int) {
	info := s.decodePixel(x, y)
	if !info.Valid {
		return
	}
	n := sel.node(nodeKey{info.PropID, info.CompositeIndex}, func() *SelectionNode {
		return &SelectionNode{
			Prop:             info.Prop,
			PropID:           info.PropID,
			CompositeIndex:   info.CompositeIndex,
			ProcessID:        info.ProcessID,
			FieldAssociation: s.fieldAssociation,
			attrs:            make(map[int64]struct{}),
			cellGrid:         make(map[CellGridID]struct{}),
		}
	})
	if n.ProcessID < 0 {
		n.ProcessID = info.ProcessID
	}
	if info.AttributeID >= 0 {
		n.attrs[info.AttributeID] = struct{}{}
	}
	if info.HasCellGrid {
		n.cellGrid[info.CellGrid] = struct{}{}
	}
	if info.HasDepth {
		n.addDepth(info.Depth)
	}
}

// decodePixel reads every captured pass at (x, y), relative to the area.
func (s *Selector) decodePixel(x, y int) PixelInformation {
	info := PixelInformation{ProcessID: -1, AttributeID: -1}
	id := int(s.PixelValue(x, y, PassActor))
	if id == 0 {
		return info
	}
	info.Valid = true
	info.PropID = id
	info.Prop = s.PropFromID(id)
	info.CompositeIndex = s.PixelValue(x, y, PassCompositeIndex)

	if pid := s.PixelValue(x, y, PassProcess); pid > 0 {
		info.ProcessID = int(pid) - 1
	}

	switch s.fieldAssociation {
	case FieldAssociationPoints:
		if s.HasPass(PassPointIDLow24) {
			info.AttributeID = s.composedValue(x, y, PassPointIDLow24, PassPointIDHigh24)
		}
	case FieldAssociationCells:
		if s.HasPass(PassCellIDLow24) {
			info.AttributeID = s.composedValue(x, y, PassCellIDLow24, PassCellIDHigh24)
		}
	}

	if s.HasPass(PassCellGridTupleLow24) {
		info.HasCellGrid = true
		info.CellGrid = CellGridID{
			TypeIndex:   s.PixelValue(x, y, PassCellGridTypeIndex),
			SourceIndex: s.PixelValue(x, y, PassCellGridSourceIndex),
			TupleID:     s.composedValue(x, y, PassCellGridTupleLow24, PassCellGridTupleHigh24),
		}
	}

	if s.store != nil {
		info.Depth, info.HasDepth = s.store.Depth(x, y)
	}
	return info
}

// composedValue joins the low and high chunks of a split id. A high pass
// that was not captured contributes 0.
func (s *Selector) composedValue(x, y int, low, high Pass) int64 {
	return int64(idcodec.Compose(s.PixelValue(x, y, low), s.PixelValue(x, y, high), 0))
}
