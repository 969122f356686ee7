package pick

import (
	"fmt"
	"maps"
	"slices"
)

// SelectionNode groups the attribute ids picked from one block of one
// drawable. Nodes are keyed by (PropID, CompositeIndex).
type SelectionNode struct {
	// Prop is the drawable the node refers to.
	Prop Drawable

	// PropID is the id the drawable was rendered with during the capture.
	PropID int

	// CompositeIndex identifies the block inside a composite drawable.
	CompositeIndex uint32

	// ProcessID is the process that rendered the pixels, -1 if unknown.
	ProcessID int

	// FieldAssociation tells whether the attribute ids are points or cells.
	FieldAssociation FieldAssociation

	// HasDepth reports whether MinDepth is valid.
	HasDepth bool

	// MinDepth is the smallest depth of any pixel of the node.
	MinDepth float32

	attrs    map[int64]struct{}
	cellGrid map[CellGridID]struct{}
}

type nodeKey struct {
	propID    int
	composite uint32
}

// CellGridID identifies one cell of a cell grid.
type CellGridID struct {
	TypeIndex   uint32
	SourceIndex uint32
	TupleID     int64
}

// AttributeIDs returns the picked point or cell ids in ascending order.
func (n *SelectionNode) AttributeIDs() []int64 {
	return slices.Sorted(maps.Keys(n.attrs))
}

// NumAttributes returns the number of distinct attribute ids.
func (n *SelectionNode) NumAttributes() int { return len(n.attrs) }

// HasAttribute reports whether id was picked.
func (n *SelectionNode) HasAttribute(id int64) bool {
	_, ok := n.attrs[id]
	return ok
}

// CellGridIDs returns the picked cell-grid ids sorted by type, source and
// tuple.
func (n *SelectionNode) CellGridIDs() []CellGridID {
	ids := slices.Collect(maps.Keys(n.cellGrid))
	slices.SortFunc(ids, func(a, b CellGridID) int {
		switch {
		case a.TypeIndex != b.TypeIndex:
			return cmpUint32(a.TypeIndex, b.TypeIndex)
		case a.SourceIndex != b.SourceIndex:
			return cmpUint32(a.SourceIndex, b.SourceIndex)
		case a.TupleID < b.TupleID:
			return -1
		case a.TupleID > b.TupleID:
			return 1
		}
		return 0
	})
	return ids
}

func cmpUint32(a, b uint32) int {
	if a < b {
		return -1
	}
	return 1
}

// String returns a short description for logs and tests.
func (n *SelectionNode) String() string {
	return fmt.Sprintf("node(prop=%d composite=%d process=%d %s=%d)",
		n.PropID, n.CompositeIndex, n.ProcessID, n.FieldAssociation, len(n.attrs))
}

func (n *SelectionNode) addDepth(z float32) {
	if !n.HasDepth || z < n.MinDepth {
		n.MinDepth = z
		n.HasDepth = true
	}
}

// Selection is the ordered result of a pick. Nodes appear in the order
// their first pixel was met in a row-major scan.
type Selection struct {
	nodes []*SelectionNode
	index map[nodeKey]*SelectionNode
}

func newSelection() *Selection {
	return &Selection{index: make(map[nodeKey]*SelectionNode)}
}

// Len returns the number of nodes.
func (sel *Selection) Len() int { return len(sel.nodes) }

// Nodes returns the nodes in first-seen order.
func (sel *Selection) Nodes() []*SelectionNode { return sel.nodes }

// Node returns the i-th node.
func (sel *Selection) Node(i int) *SelectionNode { return sel.nodes[i] }

// Find returns the node of (propID, composite), or nil.
func (sel *Selection) Find(propID int, composite uint32) *SelectionNode {
	return sel.index[nodeKey{propID, composite}]
}

// Equal reports whether both selections hold the same nodes in the same
// order with the same attribute and cell-grid sets.
func (sel *Selection) Equal(other *Selection) bool {
	if sel.Len() != other.Len() {
		return false
	}
	for i, a := range sel.nodes {
		b := other.nodes[i]
		if a.PropID != b.PropID || a.CompositeIndex != b.CompositeIndex ||
			a.ProcessID != b.ProcessID || a.FieldAssociation != b.FieldAssociation ||
			a.HasDepth != b.HasDepth || a.MinDepth != b.MinDepth ||
			!maps.Equal(a.attrs, b.attrs) || !maps.Equal(a.cellGrid, b.cellGrid) {
			return false
		}
	}
	return true
}

func (sel *Selection) node(key nodeKey, create func() *SelectionNode) *SelectionNode {
	if n, ok := sel.index[key]; ok {
		return n
	}
	n := create()
	sel.index[key] = n
	sel.nodes = append(sel.nodes, n)
	return n
}

// PixelInformation is everything decoded from one pixel.
type PixelInformation struct {
	// Valid is false when no drawable was found.
	Valid bool

	Prop           Drawable
	PropID         int
	CompositeIndex uint32

	// ProcessID is -1 when no process information was captured.
	ProcessID int

	// AttributeID is the point or cell id, -1 for other associations.
	AttributeID int64

	HasCellGrid bool
	CellGrid    CellGridID

	HasDepth bool
	Depth    float32
}
