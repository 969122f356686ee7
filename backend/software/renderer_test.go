// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/render"
	"github.com/gogpu/pick/scene"
	"golang.org/x/image/math/f64"
)

// quad returns a two-triangle mesh covering the pixels [x0,x1) x [y0,y1).
// Cell 0 is the upper-right triangle, cell 1 the lower-left one.
func quad(x0, y0, x1, y1 float64) *scene.Mesh {
	return &scene.Mesh{
		Points: []f64.Vec2{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}},
		Cells:  [][3]int{{0, 1, 2}, {0, 2, 3}},
		Color:  color.RGBA{R: 0xff, A: 0xff},
	}
}

func newSelector(r *Renderer, opts ...pick.Option) *pick.Selector {
	w, h := r.Target().Width(), r.Target().Height()
	all := append(r.Options(), pick.WithArea(0, 0, w-1, h-1))
	return pick.NewSelector(append(all, opts...)...)
}

func mustAdd(t *testing.T, r *Renderer, a *scene.Actor) {
	t.Helper()
	if err := r.Add(a); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
}

func TestSelectCells(t *testing.T) {
	r := NewRenderer(8, 8)
	a := scene.NewActor(quad(0, 0, 4, 4))
	mustAdd(t, r, a)

	sel, err := newSelector(r).Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", sel.Len())
	}
	n := sel.Node(0)
	if n.Prop != a || n.PropID != 1 {
		t.Errorf("node = %v", n)
	}
	if got := n.AttributeIDs(); !slices.Equal(got, []int64{0, 1}) {
		t.Errorf("AttributeIDs() = %v, want [0 1]", got)
	}
}

func TestSelectMappedCellIDs(t *testing.T) {
	r := NewRenderer(8, 8)
	m := quad(0, 0, 4, 4)
	m.CellIDs = []int64{100, 1 << 30}
	mustAdd(t, r, scene.NewActor(m))

	s := newSelector(r)
	if err := s.CaptureBuffers(); err != nil {
		t.Fatalf("CaptureBuffers() error = %v", err)
	}
	if !s.HasPass(pick.PassCellIDHigh24) {
		t.Fatal("CELL_ID_HIGH24 not captured for ids above 2^24")
	}
	got := s.GenerateSelection(0, 0, 7, 7).Node(0).AttributeIDs()
	if want := []int64{100, 1 << 30}; !slices.Equal(got, want) {
		t.Errorf("AttributeIDs() = %v, want %v", got, want)
	}

	info, _ := s.GetPixelInformation(image.Pt(3, 0), 0)
	if info.AttributeID != 100 {
		t.Errorf("upper-right cell id = %d, want 100", info.AttributeID)
	}
	if raw := s.RawPixel(pick.PassCellIDLow24, 3); raw != 0 {
		t.Errorf("raw local index = %d, want 0", raw)
	}
}

func TestMappedLowChunkWaitsForHighPass(t *testing.T) {
	r := NewRenderer(8, 8)
	m := quad(0, 0, 4, 4)
	m.CellIDs = []int64{100, 1 << 30}
	mustAdd(t, r, scene.NewActor(m))

	var lowAtHigh []byte
	var rawAtHigh []byte
	s := newSelector(r, pick.WithRenderer(pick.RendererFunc(func(s *pick.Selector, pass pick.Pass) error {
		if pass == pick.PassCellIDHigh24 {
			lowAtHigh = bytes.Clone(s.PixelBuffer(pick.PassCellIDLow24))
			rawAtHigh = bytes.Clone(s.RawPixelBuffer(pick.PassCellIDLow24))
		}
		return r.RenderPass(s, pass)
	})))
	if err := s.CaptureBuffers(); err != nil {
		t.Fatalf("CaptureBuffers() error = %v", err)
	}
	if rawAtHigh == nil {
		t.Fatal("CELL_ID_HIGH24 pass not rendered")
	}
	if !bytes.Equal(lowAtHigh, rawAtHigh) {
		t.Error("CELL_ID_LOW24 rewritten before the high chunk was captured")
	}
	got := s.GenerateSelection(0, 0, 7, 7).Node(0).AttributeIDs()
	if want := []int64{100, 1 << 30}; !slices.Equal(got, want) {
		t.Errorf("AttributeIDs() = %v, want %v", got, want)
	}
}

func TestSharedEdgeLaterCellWins(t *testing.T) {
	r := NewRenderer(8, 8)
	mustAdd(t, r, scene.NewActor(quad(0, 0, 4, 4)))

	s := newSelector(r)
	if err := s.CaptureBuffers(); err != nil {
		t.Fatalf("CaptureBuffers() error = %v", err)
	}
	tests := []struct {
		x, y int
		want uint32
	}{
		{2, 1, 0}, // strictly inside the upper-right cell
		{1, 2, 1}, // strictly inside the lower-left cell
		{1, 1, 1}, // centre on the shared diagonal
		{3, 3, 1},
	}
	for _, tt := range tests {
		if got := s.PixelValue(tt.x, tt.y, pick.PassCellIDLow24); got != tt.want {
			t.Errorf("cell at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSelectPoints(t *testing.T) {
	r := NewRenderer(8, 8)
	m := &scene.Mesh{
		Points:   []f64.Vec2{{1, 1}, {5, 1}, {3, 5}},
		Cells:    [][3]int{{0, 1, 2}},
		PointIDs: []int64{7, 8, 9},
	}
	mustAdd(t, r, scene.NewActor(m))

	s := newSelector(r, pick.WithFieldAssociation(pick.FieldAssociationPoints))
	if err := s.CaptureBuffers(); err != nil {
		t.Fatalf("CaptureBuffers() error = %v", err)
	}
	got := s.GenerateSelection(0, 0, 7, 7).Node(0).AttributeIDs()
	if !slices.Equal(got, []int64{7, 8, 9}) {
		t.Errorf("AttributeIDs() = %v, want [7 8 9]", got)
	}
	// Points association draws the mesh as points only.
	if info, _ := s.GetPixelInformation(image.Pt(3, 2), 0); info.Valid {
		t.Error("triangle interior drawn in points association")
	}
}

func TestSelectComposite(t *testing.T) {
	r := NewRenderer(8, 4)
	left, right := quad(0, 0, 4, 4), quad(4, 0, 8, 4)
	left.CompositeIndex, right.CompositeIndex = 1, 2
	left.CellIDs = []int64{10, 11}
	right.CellIDs = []int64{20, 21}
	mustAdd(t, r, scene.NewActor(left, right))

	sel, err := newSelector(r).Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sel.Len())
	}
	tests := []struct {
		composite uint32
		want      []int64
	}{
		{1, []int64{10, 11}},
		{2, []int64{20, 21}},
	}
	for _, tt := range tests {
		n := sel.Find(1, tt.composite)
		if n == nil {
			t.Fatalf("no node for composite %d", tt.composite)
		}
		if got := n.AttributeIDs(); !slices.Equal(got, tt.want) {
			t.Errorf("composite %d ids = %v, want %v", tt.composite, got, tt.want)
		}
	}
}

func TestSelectProcessFromData(t *testing.T) {
	r := NewRenderer(8, 8)
	m := quad(0, 0, 4, 4)
	m.ProcessIDs = []int{4, 9, 9, 4}
	mustAdd(t, r, scene.NewActor(m))

	sel, err := newSelector(r, pick.WithProcessIDFromData(true)).Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := sel.Node(0).ProcessID; got != 4 {
		t.Errorf("ProcessID = %d, want 4 (first point of each cell)", got)
	}

	r2 := NewRenderer(8, 8)
	mustAdd(t, r2, scene.NewActor(quad(0, 0, 4, 4)))
	sel, err = newSelector(r2, pick.WithProcessID(2)).Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := sel.Node(0).ProcessID; got != 2 {
		t.Errorf("ProcessID = %d, want configured 2", got)
	}
}

func TestSelectOcclusionAndDepth(t *testing.T) {
	r := NewRenderer(8, 8)
	back := quad(0, 0, 6, 6)
	back.Depth = []float32{0.75, 0.75, 0.75, 0.75}
	front := quad(2, 2, 8, 8)
	front.Depth = []float32{0.25, 0.25, 0.25, 0.25}
	// Drawn front first; the depth test keeps it on top.
	mustAdd(t, r, scene.NewActor(front))
	mustAdd(t, r, scene.NewActor(back))

	s := newSelector(r, pick.WithCaptureZValues(true))
	if err := s.CaptureBuffers(); err != nil {
		t.Fatalf("CaptureBuffers() error = %v", err)
	}
	info, _ := s.GetPixelInformation(image.Pt(3, 3), 0)
	if info.PropID != 1 {
		t.Errorf("pixel (3,3) prop = %d, want front (1)", info.PropID)
	}
	if !info.HasDepth || info.Depth != 0.25 {
		t.Errorf("depth = %v/%v, want 0.25", info.HasDepth, info.Depth)
	}

	sel := s.GenerateSelection(0, 0, 7, 7)
	n := sel.Find(2, 0)
	if n == nil || !n.HasDepth || math.Abs(float64(n.MinDepth)-0.75) > 1e-6 {
		t.Errorf("back node = %v", n)
	}
}

func TestSelectHiddenActor(t *testing.T) {
	r := NewRenderer(8, 8)
	hidden := scene.NewActor(quad(0, 0, 8, 8))
	hidden.Visible = false
	shown := scene.NewActor(quad(0, 0, 2, 2))
	mustAdd(t, r, hidden)
	mustAdd(t, r, shown)

	sel, err := newSelector(r).Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Len() != 1 || sel.Node(0).Prop != shown {
		t.Errorf("selection = %v", sel.Nodes())
	}
}

func TestSelectCellGrid(t *testing.T) {
	r := NewRenderer(4, 4)
	m := quad(0, 0, 4, 4)
	m.CellGridType, m.CellGridSource = 5, 6
	mustAdd(t, r, scene.NewActor(m))

	sel, err := newSelector(r, pick.WithCellGridTracking(true)).Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	want := []pick.CellGridID{{TypeIndex: 5, SourceIndex: 6, TupleID: 0}, {TypeIndex: 5, SourceIndex: 6, TupleID: 1}}
	if got := sel.Node(0).CellGridIDs(); !slices.Equal(got, want) {
		t.Errorf("CellGridIDs() = %v, want %v", got, want)
	}
}

func TestAddValidates(t *testing.T) {
	r := NewRenderer(4, 4)
	bad := quad(0, 0, 1, 1)
	bad.Cells = append(bad.Cells, [3]int{0, 1, 9})
	if err := r.Add(scene.NewActor(bad)); !errors.Is(err, scene.ErrBadCell) {
		t.Errorf("Add() error = %v, want ErrBadCell", err)
	}
	short := quad(0, 0, 1, 1)
	short.Depth = []float32{0}
	if err := r.Add(scene.NewActor(short)); !errors.Is(err, scene.ErrBadAttribute) {
		t.Errorf("Add() error = %v, want ErrBadAttribute", err)
	}
	if len(r.Actors()) != 0 {
		t.Error("invalid actors were added")
	}
}

func TestDrawVisible(t *testing.T) {
	r := NewRenderer(4, 4)
	r.Background = color.RGBA{B: 0xff, A: 0xff}
	mustAdd(t, r, scene.NewActor(quad(0, 0, 2, 2)))

	if err := r.Draw(nil); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if got := r.Target().GetPixel(0, 0); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("mesh pixel = %v", got)
	}
	if got := r.Target().GetPixel(3, 3); got != r.Background {
		t.Errorf("background pixel = %v", got)
	}
}

// TestParallelLockStep drives a non-root participant with Draw and checks
// that every frame matches the pass the root captured.
func TestParallelLockStep(t *testing.T) {
	scene := func() *Renderer {
		r := NewRenderer(8, 8)
		m := quad(1, 1, 7, 7)
		m.CellIDs = []int64{40, 41}
		mustAdd(t, r, scene.NewActor(m))
		mustAdd(t, r, scene.NewActor(quad(0, 0, 3, 3)))
		return r
	}
	opts := []pick.Option{pick.WithProcessID(1)}

	rootR := scene()
	root := pick.NewParallelSelector(newSelector(rootR, opts...), rootR.Events(), true)
	if err := root.CaptureBuffers(); err != nil {
		t.Fatalf("root CaptureBuffers() error = %v", err)
	}

	peerR := scene()
	peer := pick.NewParallelSelector(newSelector(peerR, opts...), peerR.Events(), false)
	ended := 0
	peer.OnSelectionEnd(func() { ended++ })
	if err := peer.CaptureBuffers(); err != nil {
		t.Fatalf("peer CaptureBuffers() error = %v", err)
	}

	var followed []pick.Pass
	for frame := 0; peer.InProgress(); frame++ {
		if frame > pick.NumPasses {
			t.Fatal("peer never finished")
		}
		pass := peer.CurrentPass()
		followed = append(followed, pass)
		if err := peerR.Draw(peer.Selector); err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
		got, err := render.ReadRGB(peerR.Target(), image.Rect(0, 0, 8, 8))
		if err != nil {
			t.Fatalf("ReadRGB() error = %v", err)
		}
		if !bytes.Equal(got, root.RawPixelBuffer(pass)) {
			t.Errorf("%v: peer frame differs from root capture", pass)
		}
	}

	want := []pick.Pass{pick.PassActor, pick.PassCompositeIndex, pick.PassProcess, pick.PassCellIDLow24}
	if !slices.Equal(followed, want) || ended != 1 {
		t.Errorf("followed %v (ended %d), want %v", followed, ended, want)
	}
}
