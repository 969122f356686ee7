// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 10, 10},
		{"medium", 800, 600},
		{"wide", 1000, 100},
		{"tall", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewPixmapTarget(tt.width, tt.height)

			if target.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", target.Width(), tt.width)
			}
			if target.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", target.Height(), tt.height)
			}
			if target.Format() != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
			}
			if target.TextureView() != nil {
				t.Error("TextureView() should be nil for CPU target")
			}
			if target.Stride() != tt.width*4 {
				t.Errorf("Stride() = %d, want %d", target.Stride(), tt.width*4)
			}
			if target.Depth() != nil {
				t.Error("Depth() should be nil until EnableDepth")
			}
		})
	}
}

func TestPixmapTargetClear(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.EnableDepth()
	target.DepthTest(1, 1, 0.25)

	target.Clear(color.RGBA{0, 0, 255, 255})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			pixel := target.GetPixel(x, y).(color.RGBA)
			if pixel != (color.RGBA{0, 0, 255, 255}) {
				t.Errorf("Pixel at (%d, %d) = %v, want blue", x, y, pixel)
			}
		}
	}
	if d := target.Depth()[1*4+1]; d != 1 {
		t.Errorf("depth after Clear = %v, want 1", d)
	}
}

func TestPixmapTargetDepthTest(t *testing.T) {
	target := NewPixmapTarget(3, 3)

	if !target.DepthTest(1, 1, 0.9) {
		t.Error("DepthTest() without a depth plane should pass in bounds")
	}
	if target.DepthTest(3, 0, 0.1) {
		t.Error("DepthTest() should fail out of bounds")
	}

	target.EnableDepth()
	tests := []struct {
		z    float32
		want bool
	}{
		{0.5, true},
		{0.7, false},
		{0.5, true},
		{0.2, true},
	}
	for i, tt := range tests {
		if got := target.DepthTest(1, 1, tt.z); got != tt.want {
			t.Errorf("step %d: DepthTest(z=%v) = %v, want %v", i, tt.z, got, tt.want)
		}
	}
}

func TestPixmapTargetReadDepth(t *testing.T) {
	target := NewPixmapTarget(3, 2)
	if _, err := target.ReadDepth(image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrNoDepth) {
		t.Errorf("ReadDepth() without plane error = %v, want ErrNoDepth", err)
	}

	target.EnableDepth()
	target.DepthTest(2, 1, 0.3)

	got, err := target.ReadDepth(image.Rect(1, 1, 3, 2))
	if err != nil {
		t.Fatalf("ReadDepth() error = %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 0.3 {
		t.Errorf("ReadDepth() = %v, want [1 0.3]", got)
	}

	if _, err := target.ReadDepth(image.Rect(0, 0, 4, 1)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ReadDepth() outside error = %v, want ErrOutOfBounds", err)
	}
}

func TestPixmapTargetResize(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	target.EnableDepth()
	target.SetPixel(5, 5, color.RGBA{255, 0, 0, 255})

	target.Resize(20, 15)

	if target.Width() != 20 || target.Height() != 15 {
		t.Errorf("size after Resize = %dx%d, want 20x15", target.Width(), target.Height())
	}
	if pixel := target.GetPixel(5, 5).(color.RGBA); pixel.A != 0 {
		t.Errorf("Pixel after resize should be transparent, got %v", pixel)
	}
	if len(target.Depth()) != 20*15 {
		t.Errorf("depth plane length = %d, want %d", len(target.Depth()), 20*15)
	}
}

func TestPixmapTargetFromImageSharesMemory(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	target := NewPixmapTargetFromImage(img)

	img.SetRGBA(3, 4, color.RGBA{255, 0, 0, 255})
	if pixel := target.GetPixel(3, 4).(color.RGBA); pixel.R != 255 {
		t.Error("Image and target should share memory")
	}
}
