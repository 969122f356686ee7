package pick

import (
	"fmt"
	"image"
)

// Pass is one render of the scene with a specific identifier encoding.
//
// Passes always execute in ordinal order. The order is fixed by the
// dependencies between them: the ACTOR pass decides which drawables are
// visible, and every later pass only refines pixels the ACTOR pass hit.
type Pass int

const (
	// PassActor encodes the drawable (prop) id of every fragment.
	PassActor Pass = iota

	// PassCompositeIndex encodes the block index inside composite drawables.
	PassCompositeIndex

	// PassPointIDLow24 encodes bits 0..23 of point ids.
	PassPointIDLow24

	// PassPointIDHigh24 encodes bits 24..47 of point ids.
	PassPointIDHigh24

	// PassProcess encodes the rendering process id plus one.
	PassProcess

	// PassCellIDLow24 encodes bits 0..23 of cell ids.
	PassCellIDLow24

	// PassCellIDHigh24 encodes bits 24..47 of cell ids.
	PassCellIDHigh24

	// PassCellGridTypeIndex encodes the cell-grid cell type index.
	PassCellGridTypeIndex

	// PassCellGridSourceIndex encodes the cell-grid source index.
	PassCellGridSourceIndex

	// PassCellGridTupleLow24 encodes bits 0..23 of cell-grid tuple ids.
	PassCellGridTupleLow24

	// PassCellGridTupleHigh24 encodes bits 24..47 of cell-grid tuple ids.
	PassCellGridTupleHigh24
)

const (
	// MinKnownPass is the first pass of every capture.
	MinKnownPass = PassActor

	// MaxKnownPass is the last pass a capture may execute.
	MaxKnownPass = PassCellGridTupleHigh24

	// NumPasses is the number of distinct passes.
	NumPasses = int(MaxKnownPass) + 1
)

var passNames = [NumPasses]string{
	"ACTOR",
	"COMPOSITE_INDEX",
	"POINT_ID_LOW24",
	"POINT_ID_HIGH24",
	"PROCESS",
	"CELL_ID_LOW24",
	"CELL_ID_HIGH24",
	"CELLGRID_TYPE_INDEX",
	"CELLGRID_SOURCE_INDEX",
	"CELLGRID_TUPLE_LOW24",
	"CELLGRID_TUPLE_HIGH24",
}

// String returns the pass name.
func (p Pass) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pass(%d)", int(p))
	}
	return passNames[p]
}

// Valid reports whether p is one of the known passes.
func (p Pass) Valid() bool {
	return p >= MinKnownPass && p <= MaxKnownPass
}

// IsHigh24 reports whether p carries the high chunk of a split identifier.
func (p Pass) IsHigh24() bool {
	return p == PassPointIDHigh24 || p == PassCellIDHigh24 || p == PassCellGridTupleHigh24
}

// IsLow24 reports whether p carries the low chunk of a split identifier.
func (p Pass) IsLow24() bool {
	return p == PassPointIDLow24 || p == PassCellIDLow24 || p == PassCellGridTupleLow24
}

// FieldAssociation selects what attribute ids refer to.
type FieldAssociation int

const (
	// FieldAssociationPoints selects point ids. Renderers draw all
	// geometry as points in every pass.
	FieldAssociationPoints FieldAssociation = iota

	// FieldAssociationCells selects cell ids.
	FieldAssociationCells

	// FieldAssociationNone selects no attribute ids. Selections still list
	// the visible drawables, with empty attribute sets.
	FieldAssociationNone

	// FieldAssociationVertices, FieldAssociationEdges and
	// FieldAssociationRows are not supported by hardware selection and
	// behave like FieldAssociationNone.
	FieldAssociationVertices
	FieldAssociationEdges
	FieldAssociationRows
)

// String returns the association name.
func (f FieldAssociation) String() string {
	switch f {
	case FieldAssociationPoints:
		return "Points"
	case FieldAssociationCells:
		return "Cells"
	case FieldAssociationNone:
		return "None"
	case FieldAssociationVertices:
		return "Vertices"
	case FieldAssociationEdges:
		return "Edges"
	case FieldAssociationRows:
		return "Rows"
	default:
		return "Unknown"
	}
}

// Area is an inclusive rectangle in display pixels.
type Area struct {
	XMin, YMin, XMax, YMax int
}

// NewArea returns the area spanned by two corners in any order.
func NewArea(x1, y1, x2, y2 int) Area {
	return Area{
		XMin: min(x1, x2),
		YMin: min(y1, y2),
		XMax: max(x1, x2),
		YMax: max(y1, y2),
	}
}

// Width returns the number of columns, 0 for an empty area.
func (a Area) Width() int { return max(a.XMax-a.XMin+1, 0) }

// Height returns the number of rows, 0 for an empty area.
func (a Area) Height() int { return max(a.YMax-a.YMin+1, 0) }

// Empty reports whether the area contains no pixels.
func (a Area) Empty() bool { return a.Width() == 0 || a.Height() == 0 }

// Contains reports whether the display pixel (x, y) lies inside a.
func (a Area) Contains(x, y int) bool {
	return x >= a.XMin && x <= a.XMax && y >= a.YMin && y <= a.YMax
}

// Intersect returns the largest area contained in both a and b. The result
// may be empty.
func (a Area) Intersect(b Area) Area {
	return Area{
		XMin: max(a.XMin, b.XMin),
		YMin: max(a.YMin, b.YMin),
		XMax: min(a.XMax, b.XMax),
		YMax: min(a.YMax, b.YMax),
	}
}

// Rect returns a as a half-open image.Rectangle.
func (a Area) Rect() image.Rectangle {
	if a.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(a.XMin, a.YMin, a.XMax+1, a.YMax+1)
}

// String returns "(xmin,ymin)-(xmax,ymax)".
func (a Area) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", a.XMin, a.YMin, a.XMax, a.YMax)
}
