// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pick/render"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment WebGPU requires for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// fenceTimeout bounds every wait for the GPU.
const fenceTimeout = 5 * time.Second

// TextureTarget is a BGRA8Unorm GPU texture that selection reads back
// through the HAL.
//
// It implements render.RenderTarget and render.PixelReader. Pixels returns
// nil; ReadPixels copies the texture into a staging buffer on every call.
type TextureTarget struct {
	device hal.Device
	queue  hal.Queue

	tex  hal.Texture
	view hal.TextureView

	width, height int
}

// NewTextureTarget creates a width x height texture on the device behind h.
func NewTextureTarget(h render.DeviceHandle, width, height int) (*TextureTarget, error) {
	device, queue, err := halResources(h)
	if err != nil {
		return nil, err
	}
	return newTextureTarget(device, queue, width, height)
}

func newTextureTarget(device hal.Device, queue hal.Queue, width, height int) (*TextureTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid target size %dx%d", width, height)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "pick_id_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create id texture: %w", err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "pick_id_target_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create id texture view: %w", err)
	}

	return &TextureTarget{
		device: device,
		queue:  queue,
		tex:    tex,
		view:   view,
		width:  width,
		height: height,
	}, nil
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int { return t.height }

// Format returns gputypes.TextureFormatBGRA8Unorm.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// TextureView returns the target itself; destroying the view destroys the
// target.
func (t *TextureTarget) TextureView() render.TextureView { return t }

// Pixels returns nil; the texture has no CPU-visible memory.
func (t *TextureTarget) Pixels() []byte { return nil }

// Stride returns the tightly packed row size of the texture.
func (t *TextureTarget) Stride() int { return t.width * 4 }

// Clear fills the texture with black, the background id.
func (t *TextureTarget) Clear() error {
	return t.submit("pick_clear", func(encoder hal.CommandEncoder) {
		rp := encoder.BeginRenderPass(t.clearPass("pick_clear_pass"))
		rp.End()
	})
}

// clearPass returns a render pass that clears the texture to black.
func (t *TextureTarget) clearPass(label string) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       t.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	}
}

// ReadPixels implements render.PixelReader.
func (t *TextureTarget) ReadPixels(r image.Rectangle) ([]byte, error) {
	w, h := uint32(t.width), uint32(t.height)
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := t.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pick_readback_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer t.device.DestroyBuffer(stagingBuf)

	err = t.submit("pick_readback", func(encoder hal.CommandEncoder) {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: t.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		encoder.CopyTextureToBuffer(t.tex, stagingBuf, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})
		// Back to RenderAttachment for the next pass.
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: t.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	})
	if err != nil {
		return nil, err
	}

	readback := make([]byte, stagingBufSize)
	if err := t.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("wgpu: readback: %w", err)
	}
	return render.ConvertToRGB(readback, int(alignedBytesPerRow), t.Format(), r)
}

// submit records one command buffer with record, submits it and waits for
// the GPU to finish.
func (t *TextureTarget) submit(label string, record func(encoder hal.CommandEncoder)) error {
	encoder, err := t.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	record(encoder)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer t.device.FreeCommandBuffer(cmdBuf)

	fence, err := t.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer t.device.DestroyFence(fence)

	if err := t.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	ok, err := t.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Destroy releases the texture and its view. It is safe to call twice.
func (t *TextureTarget) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// Ensure TextureTarget implements the render interfaces.
var (
	_ render.RenderTarget = (*TextureTarget)(nil)
	_ render.PixelReader  = (*TextureTarget)(nil)
	_ render.TextureView  = (*TextureTarget)(nil)
)
