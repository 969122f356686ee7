// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu renders selection passes on the GPU through gogpu/wgpu.
//
// The backend RECEIVES its device from the host application through a
// render.DeviceHandle whose provider also exposes the HAL device and queue
// (HalDevice and HalQueue). It never creates a device of its own.
//
// # Pipeline
//
// A single render pipeline draws triangle lists with the id shader in
// shaders/id.wgsl. Vertices are in display pixels; every vertex of a
// primitive carries the same id colour and blending is off, so the
// BGRA8Unorm target stores the identifier bytes unchanged.
//
// Each pass is one command buffer:
//
//	clear (LoadOpClear to black) -> draw -> submit -> fence wait
//
// TextureTarget reads the texture back through a MapRead staging buffer
// with 256-byte aligned rows and converts it to RGB triples with
// render.ConvertToRGB.
//
// # Limitations
//
// The GPU path has no depth attachment. Actors are drawn in scene order
// and the target does not implement render.DepthReader, so Z capture
// reports no depth. Use backend/software when depth matters.
//
// # Usage
//
//	r, err := wgpu.NewRenderer(provider, 640, 480)
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//	r.Add(scene.NewActor(mesh))
//	s := pick.NewSelector(append(r.Options(), pick.WithArea(0, 0, 639, 479))...)
//	sel, err := s.Select()
//
// Build with the nogpu tag to exclude the HAL code; the shader helpers
// stay available.
package wgpu
