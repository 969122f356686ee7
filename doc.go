// Package pick provides hardware selection (GPU-assisted picking) for Go.
//
// # Overview
//
// Hardware selection answers "what is under this rectangle?" for a rendered
// scene. Instead of intersecting geometry on the CPU, the scene is rendered
// several times with every fragment coloured by an identifier: the
// drawable in the first pass, the block of a composite drawable in the
// second, then point, process, cell and cell-grid ids. Reading the passes
// back and decoding them pixel by pixel yields exactly the visible
// primitives, with no precision issues at silhouettes.
//
// # Quick Start
//
//	import "github.com/gogpu/pick"
//
//	s := pick.NewSelector(
//	    pick.WithRenderer(renderer),
//	    pick.WithRenderTarget(target),
//	    pick.WithArea(0, 0, 99, 99),
//	    pick.WithFieldAssociation(pick.FieldAssociationCells),
//	)
//	sel, err := s.Select()
//	if err != nil {
//	    return err
//	}
//	for _, n := range sel.Nodes() {
//	    fmt.Println(n.Prop, n.AttributeIDs())
//	}
//
// # Passes
//
// Passes run in the fixed order of the Pass constants. The ACTOR pass
// always runs; everything else depends on configuration (see
// Selector.IsPassRequired). Identifiers wider than 24 bits are split into a
// LOW24 and a HIGH24 pass; the HIGH24 pass only runs when a renderer
// reported an id of at least 2^24 through UpdateMaximumPointID and friends.
//
// # Renderers
//
// A Renderer draws the scene once per pass. Around every drawable it calls
// BeginRenderProp and EndRenderProp, and it fills fragments with
// PropColor or AttributeColor instead of shading them. Antialiasing,
// blending and multisampling must be off. The backend/software package is
// a complete CPU renderer and backend/wgpu draws the same passes on the
// host GPU device. Package backend selects between them by name.
//
// # Manual Picking
//
// Interactive tools capture once and query many times:
//
//	if err := s.CaptureBuffers(); err != nil {
//	    return err
//	}
//	defer s.ClearBuffers()
//	info, at := s.GetPixelInformation(image.Pt(mx, my), 3)
//
// # Distributed Rendering
//
// ParallelSelector keeps non-root processes of a composited render in
// lock-step with the root's passes by following render notifications.
//
// # Coordinate System
//
// Areas and GenerateSelection use display pixels with the origin at the
// top-left. Captured buffers, polygon vertices and pixel offsets handed to
// PixelProcessor are relative to the capture area origin.
package pick
