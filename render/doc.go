// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between selection and the
// host's rendering stack.
//
// Selection never draws anything itself. It asks an external renderer to
// draw each pass and then reads the result back from a RenderTarget. This
// package defines those boundaries.
//
// # Key Principle
//
// Selection RECEIVES targets and devices from the host application, it does
// NOT create its own. This follows the gogpu pattern where libraries are
// injected with GPU resources rather than managing them.
//
// # Core Interfaces
//
//   - RenderTarget: Where pass output goes (Pixmap, Texture, Surface)
//   - PixelReader: Optional RGB readback for GPU-only targets
//   - DepthReader: Optional depth readback for z-capture
//   - EventSource: Pre/post render notifications for lock-step selection
//   - DeviceHandle: GPU device access from the host application
//
// # Implementations
//
//   - PixmapTarget: CPU-backed *image.RGBA target with an optional depth plane
//   - Events: EventSource driven by the render loop with Emit
//   - NullDeviceHandle: DeviceHandle for CPU-only setups
//
// # Readback
//
// ReadRGB converts a rectangle of any supported target into the packed RGB
// layout selection buffers use:
//
//	rgb, err := render.ReadRGB(target, image.Rect(0, 0, 64, 64))
//
// RGBA8 and BGRA8 targets are swizzled as needed and row padding is
// skipped. Other formats return ErrUnsupportedFormat.
//
// # Thread Safety
//
// Targets and Events are NOT thread-safe. Drive them from the render
// goroutine, or use external synchronization.
package render
