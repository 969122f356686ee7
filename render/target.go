// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// RenderTarget defines where rendering output goes.
//
// A RenderTarget is an abstraction over different rendering destinations:
//   - PixmapTarget: CPU-backed *image.RGBA for software rendering
//   - wgpu.TextureTarget: GPU texture read back through the HAL
//
// Targets may support CPU access (Pixels), GPU access (TextureView), or both.
// Selection reads targets through ReadRGB, which prefers PixelReader when a
// target implements it.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view for this target.
	// Returns nil for CPU-only targets.
	TextureView() TextureView

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only targets.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixelReader is implemented by targets that read pixels back themselves,
// typically GPU targets without CPU-visible memory.
type PixelReader interface {
	// ReadPixels returns the pixels inside r as tightly packed RGB triples,
	// row by row from r.Min.Y.
	ReadPixels(r image.Rectangle) ([]byte, error)
}

// DepthReader is implemented by targets that keep a depth plane.
type DepthReader interface {
	// ReadDepth returns the depth values inside r, row by row from r.Min.Y.
	// Depth is in [0, 1] with 0 nearest to the viewer.
	ReadDepth(r image.Rectangle) ([]float32, error)
}

// TextureView represents a view into a GPU texture.
type TextureView interface {
	// Destroy releases resources associated with this view.
	Destroy()
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// This target supports software rendering and provides direct pixel access.
// A depth plane can be attached with EnableDepth for z-tested rendering and
// depth capture.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	target.EnableDepth()
//	img := target.Image()
type PixmapTarget struct {
	img   *image.RGBA
	depth []float32
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() TextureView {
	return nil
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color and resets the depth
// plane, if any, to the far value 1.
func (t *PixmapTarget) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)

	bounds := t.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			t.img.SetRGBA(x, y, rgba)
		}
	}
	for i := range t.depth {
		t.depth[i] = 1
	}
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.Color {
	return t.img.At(x, y)
}

// EnableDepth attaches a depth plane cleared to 1. It is a no-op when the
// plane already exists.
func (t *PixmapTarget) EnableDepth() {
	if t.depth != nil {
		return
	}
	t.depth = make([]float32, t.Width()*t.Height())
	for i := range t.depth {
		t.depth[i] = 1
	}
}

// Depth returns the depth plane, row-major, or nil when depth is disabled.
func (t *PixmapTarget) Depth() []float32 {
	return t.depth
}

// DepthTest stores z at (x, y) if it is not farther than the current value
// and reports whether the fragment passed. Without a depth plane every
// in-bounds fragment passes.
func (t *PixmapTarget) DepthTest(x, y int, z float32) bool {
	w, h := t.Width(), t.Height()
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	if t.depth == nil {
		return true
	}
	i := y*w + x
	if z > t.depth[i] {
		return false
	}
	t.depth[i] = z
	return true
}

// ReadDepth returns the depth values inside r.
func (t *PixmapTarget) ReadDepth(r image.Rectangle) ([]float32, error) {
	if t.depth == nil {
		return nil, ErrNoDepth
	}
	w := t.Width()
	if !r.In(image.Rect(0, 0, w, t.Height())) {
		return nil, ErrOutOfBounds
	}
	out := make([]float32, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		out = append(out, t.depth[y*w+r.Min.X:y*w+r.Max.X]...)
	}
	return out, nil
}

// Resize creates a new target with the given dimensions.
// The contents are not preserved; a depth plane is recreated if present.
func (t *PixmapTarget) Resize(width, height int) {
	hadDepth := t.depth != nil
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	t.depth = nil
	if hadDepth {
		t.EnableDepth()
	}
}

// Ensure PixmapTarget implements RenderTarget and DepthReader.
var (
	_ RenderTarget = (*PixmapTarget)(nil)
	_ DepthReader  = (*PixmapTarget)(nil)
)
