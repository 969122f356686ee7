// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package debugview renders captured selection passes as false-colour
// images for inspection.
//
// Every decoded identifier gets a stable, well-separated hue; the
// background stays black. Images can be upscaled with nearest-neighbour
// sampling so single-pixel features stay visible.
package debugview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gogpu/pick"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrNotCaptured is returned for passes without a pixel buffer.
var ErrNotCaptured = errors.New("debugview: pass not captured")

// goldenRatio spreads consecutive ids around the hue circle.
const goldenRatio = 0.618033988749895

// FalseColor returns the display colour of identifier v. 0 is black.
func FalseColor(v uint32) color.NRGBA {
	if v == 0 {
		return color.NRGBA{A: 0xff}
	}
	_, frac := math.Modf(float64(v) * goldenRatio)
	// Alternate the value so neighbouring hues also differ in brightness.
	val := 0.95
	if v%2 == 0 {
		val = 0.75
	}
	r, g, b := colorful.Hsv(frac*360, 0.7, val).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// PassImage returns the processed buffer of pass as a false-colour image
// the size of the capture.
func PassImage(s *pick.Selector, pass pick.Pass) (*image.NRGBA, error) {
	if !s.HasPass(pass) {
		return nil, fmt.Errorf("%w: %v", ErrNotCaptured, pass)
	}
	w, h := s.CaptureSize()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, FalseColor(s.PixelValue(x, y, pass)))
		}
	}
	return img, nil
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling.
// Factors below 2 return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// Encode writes pass as a PNG scaled by factor.
func Encode(w io.Writer, s *pick.Selector, pass pick.Pass, factor int) error {
	img, err := PassImage(s, pass)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, Scale(img, factor), imaging.PNG); err != nil {
		return fmt.Errorf("debugview: encode %v: %w", pass, err)
	}
	return nil
}

// FileName returns the PNG file name used for pass, e.g. "cell_id_low24.png".
func FileName(pass pick.Pass) string {
	return strings.ToLower(pass.String()) + ".png"
}

// Dump writes every captured pass of s into dir as PNG files scaled by
// factor and returns the written paths in pass order.
func Dump(s *pick.Selector, dir string, factor int) ([]string, error) {
	var paths []string
	for p := pick.MinKnownPass; p <= pick.MaxKnownPass; p++ {
		if !s.HasPass(p) {
			continue
		}
		img, err := PassImage(s, p)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, FileName(p))
		if err := imaging.Save(Scale(img, factor), path); err != nil {
			return paths, fmt.Errorf("debugview: save %v: %w", p, err)
		}
		pick.Logger().Debug("debugview: pass written",
			slog.String("pass", p.String()),
			slog.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}
