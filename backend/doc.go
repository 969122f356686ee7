// Package backend provides a pluggable picking backend abstraction.
//
// A backend owns a scene of actors and the renderer that draws selection
// passes of it. The registry lets tools choose a backend by name at
// runtime instead of importing a concrete package.
//
// # Backend Registration
//
// Backends are registered via init() functions. Importing this package
// registers "software" and, unless built with the nogpu tag, "wgpu".
//
// # Backend Selection
//
// Use Default to get the best available backend, or New to request one
// by name:
//
//	b, err := backend.New(backend.BackendSoftware, backend.Config{Width: 640, Height: 480})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	b.Add(scene.NewActor(mesh))
//	s := pick.NewSelector(append(b.Options(), pick.WithArea(0, 0, 639, 479))...)
//
// Default tries "wgpu" first and falls back to "software" when the
// configuration carries no usable GPU device.
//
// # Available Backends
//
// - "software": CPU rasteriser with a depth plane (always available)
// - "wgpu": GPU id pipeline on a host-provided gogpu/wgpu device
package backend
