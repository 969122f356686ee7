// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software is a CPU renderer for hardware selection.
//
// It rasterises triangle meshes without antialiasing into a
// render.PixmapTarget, sampling at pixel centres, so every selection pass
// produces exact identifier colours. It is the reference collaborator for
// package pick and is useful on machines without a GPU, in tests and in
// tools that pick from precomputed screen-space geometry.
//
// # Scene
//
// A scene is a list of scene.Actor values. Each actor is one pickable
// drawable and holds one or more meshes (blocks). Mesh positions are in
// display pixels after the renderer's view transform.
//
// # Usage
//
//	r := software.NewRenderer(640, 480)
//	r.Add(scene.NewActor(mesh))
//	s := pick.NewSelector(append(r.Options(), pick.WithArea(0, 0, 639, 479))...)
//	sel, err := s.Select()
//
// # Distributed Rendering
//
// Draw renders one frame and emits render.EventPreRender and
// render.EventPostRender around it. A non-root pick.ParallelSelector
// subscribed to Events follows the passes while Draw keeps rendering the
// selector's current pass.
package software
