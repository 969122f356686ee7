// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/render"
	"github.com/gogpu/pick/scene"
	"golang.org/x/image/math/f64"
)

// Renderer draws actors into a PixmapTarget with a depth plane.
//
// It implements pick.Renderer and pick.DeviceHooks; Options wires both
// into a Selector. Renderer is NOT thread-safe.
type Renderer struct {
	// View maps scene units to display pixels. NewRenderer sets Identity.
	View f64.Aff3

	// Background is the colour Draw clears to outside selections.
	Background color.RGBA

	target *render.PixmapTarget
	events render.Events
	actors []*scene.Actor

	propsDrawn int
}

// NewRenderer creates a renderer with a width x height target.
func NewRenderer(width, height int) *Renderer {
	t := render.NewPixmapTarget(width, height)
	t.EnableDepth()
	return &Renderer{
		View:       Identity,
		Background: color.RGBA{A: 0xff},
		target:     t,
	}
}

// Target returns the render target.
func (r *Renderer) Target() *render.PixmapTarget { return r.target }

// Events returns the notifications Draw emits.
func (r *Renderer) Events() *render.Events { return &r.events }

// Add validates every block of a and appends it to the scene.
func (r *Renderer) Add(a *scene.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	r.actors = append(r.actors, a)
	return nil
}

// Actors returns the scene in drawing order.
func (r *Renderer) Actors() []*scene.Actor { return r.actors }

// Options returns the selector options that render with r: renderer,
// target and device hooks.
func (r *Renderer) Options() []pick.Option {
	return []pick.Option{
		pick.WithRenderer(r),
		pick.WithRenderTarget(r.target),
		pick.WithDeviceHooks(r),
	}
}

// RenderPass implements pick.Renderer.
func (r *Renderer) RenderPass(s *pick.Selector, pass pick.Pass) error {
	scene.Walk(s, pass, r.actors, r.drawMesh)
	return nil
}

// Draw renders one frame between EventPreRender and EventPostRender. While
// s is in progress the frame is s's current selection pass, otherwise the
// visible scene. s may be nil.
func (r *Renderer) Draw(s *pick.Selector) error {
	r.events.Emit(render.EventPreRender)
	if s != nil && s.InProgress() && s.CurrentPass().Valid() {
		scene.Walk(s, s.CurrentPass(), r.actors, r.drawMesh)
	} else {
		r.drawVisible()
	}
	r.events.Emit(render.EventPostRender)
	return nil
}

// BeginRenderProp implements pick.DeviceHooks.
func (r *Renderer) BeginRenderProp(*pick.Selector) {}

// EndRenderProp implements pick.DeviceHooks.
func (r *Renderer) EndRenderProp(*pick.Selector) {
	r.propsDrawn++
}

// PreCapturePass implements pick.DeviceHooks. It clears the target to the
// background id and the far depth.
func (r *Renderer) PreCapturePass(_ *pick.Selector, _ pick.Pass) {
	r.target.Clear(color.Black)
	r.propsDrawn = 0
}

// PostCapturePass implements pick.DeviceHooks.
func (r *Renderer) PostCapturePass(_ *pick.Selector, pass pick.Pass) {
	pick.Logger().Debug("software: pass drawn",
		slog.String("pass", pass.String()),
		slog.Int("props", r.propsDrawn))
}

func (r *Renderer) drawVisible() {
	r.target.Clear(r.Background)
	scene.WalkVisible(r.actors, r.drawMesh)
}

// drawMesh rasterises m as points or triangles, colouring primitive i with
// colorOf(i).
func (r *Renderer) drawMesh(m *scene.Mesh, asPoints bool, colorOf func(i int) [3]byte) {
	w, h := r.target.Width(), r.target.Height()
	pts := make([]f64.Vec2, len(m.Points))
	for i, p := range m.Points {
		pts[i] = apply(r.View, p)
	}

	if asPoints {
		for i, p := range pts {
			c, z := colorOf(i), m.DepthAt(i)
			fillPoint(p, m.PointSize, w, h, func(x, y int) {
				r.plot(x, y, z, c)
			})
		}
		return
	}
	for i, cell := range m.Cells {
		c := colorOf(i)
		a, b, d := cell[0], cell[1], cell[2]
		fillTriangle(pts[a], pts[b], pts[d], m.DepthAt(a), m.DepthAt(b), m.DepthAt(d), w, h,
			func(x, y int, z float32) {
				r.plot(x, y, z, c)
			})
	}
}

func (r *Renderer) plot(x, y int, z float32, c [3]byte) {
	if !r.target.DepthTest(x, y, z) {
		return
	}
	r.target.Image().SetRGBA(x, y, color.RGBA{c[0], c[1], c[2], 0xff})
}

// Ensure Renderer implements pick.Renderer and pick.DeviceHooks.
var (
	_ pick.Renderer    = (*Renderer)(nil)
	_ pick.DeviceHooks = (*Renderer)(nil)
)
