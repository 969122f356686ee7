// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// Readback errors.
var (
	// ErrUnsupportedFormat is returned when a target's pixel format cannot be
	// converted to RGB.
	ErrUnsupportedFormat = errors.New("render: unsupported pixel format")

	// ErrNoCPUAccess is returned when a target has neither CPU pixels nor a
	// PixelReader implementation.
	ErrNoCPUAccess = errors.New("render: target does not support CPU readback")

	// ErrOutOfBounds is returned when a readback rectangle leaves the target.
	ErrOutOfBounds = errors.New("render: rectangle outside target")

	// ErrNoDepth is returned when depth is requested from a target without
	// a depth plane.
	ErrNoDepth = errors.New("render: target has no depth plane")
)

// channelOrder returns the byte offsets of R, G and B inside a 4-byte
// pixel of the given format.
func channelOrder(format gputypes.TextureFormat) (r, g, b int, ok bool) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return 0, 1, 2, true
	case gputypes.TextureFormatBGRA8Unorm:
		return 2, 1, 0, true
	default:
		return 0, 0, 0, false
	}
}

// ReadRGB returns the pixels of target inside r as tightly packed RGB
// triples, row by row. Targets implementing PixelReader are asked
// directly; CPU targets are converted from their 4-byte format honouring
// the row stride.
func ReadRGB(target RenderTarget, r image.Rectangle) ([]byte, error) {
	if target == nil {
		return nil, ErrNoCPUAccess
	}
	if !r.In(image.Rect(0, 0, target.Width(), target.Height())) {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, r)
	}
	if pr, ok := target.(PixelReader); ok {
		return pr.ReadPixels(r)
	}

	pixels := target.Pixels()
	if pixels == nil {
		return nil, ErrNoCPUAccess
	}
	return ConvertToRGB(pixels, target.Stride(), target.Format(), r)
}

// ConvertToRGB extracts r from a 4-byte-per-pixel buffer laid out with the
// given stride and format.
func ConvertToRGB(pixels []byte, stride int, format gputypes.TextureFormat, r image.Rectangle) ([]byte, error) {
	ri, gi, bi, ok := channelOrder(format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	out := make([]byte, 0, 3*r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * stride
		for x := r.Min.X; x < r.Max.X; x++ {
			o := row + x*4
			if o+3 >= len(pixels) {
				return nil, fmt.Errorf("%w: pixel (%d, %d)", ErrOutOfBounds, x, y)
			}
			out = append(out, pixels[o+ri], pixels[o+gi], pixels[o+bi])
		}
	}
	return out, nil
}

// ReadDepth returns the depth plane of target inside r, or ErrNoDepth when
// the target keeps none.
func ReadDepth(target RenderTarget, r image.Rectangle) ([]float32, error) {
	dr, ok := target.(DepthReader)
	if !ok {
		return nil, ErrNoDepth
	}
	return dr.ReadDepth(r)
}
