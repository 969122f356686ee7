package pick

import "github.com/gogpu/pick/render"

// Option configures a Selector during creation.
// Use functional options to customize Selector behavior.
//
// Example:
//
//	s := pick.NewSelector(
//	    pick.WithRenderer(renderer),
//	    pick.WithRenderTarget(target),
//	    pick.WithArea(0, 0, 639, 479),
//	    pick.WithFieldAssociation(pick.FieldAssociationPoints),
//	)
type Option func(*Selector)

// WithRenderer sets the renderer that draws each pass.
func WithRenderer(r Renderer) Option {
	return func(s *Selector) {
		s.renderer = r
	}
}

// WithRenderTarget sets the target passes are read back from.
func WithRenderTarget(t render.RenderTarget) Option {
	return func(s *Selector) {
		s.target = t
	}
}

// WithDeviceHooks injects the device-specific hooks. The default is
// NopDeviceHooks.
func WithDeviceHooks(h DeviceHooks) Option {
	return func(s *Selector) {
		if h == nil {
			h = NopDeviceHooks{}
		}
		s.hooks = h
	}
}

// WithArea sets the capture area from two corners in display pixels.
func WithArea(x1, y1, x2, y2 int) Option {
	return func(s *Selector) {
		s.SetArea(x1, y1, x2, y2)
	}
}

// WithFieldAssociation selects whether attribute ids are points or cells.
// The default is FieldAssociationCells.
func WithFieldAssociation(f FieldAssociation) Option {
	return func(s *Selector) {
		s.fieldAssociation = f
	}
}

// WithActorOnly restricts captures to the ACTOR pass. Selections then list
// visible drawables only.
func WithActorOnly(on bool) Option {
	return func(s *Selector) {
		s.actorOnly = on
	}
}

// WithCaptureZValues captures the depth plane with the ACTOR pass so
// selection nodes report their minimum depth. The target must implement
// render.DepthReader.
func WithCaptureZValues(on bool) Option {
	return func(s *Selector) {
		s.captureZ = on
	}
}

// WithProcessID records pid in the PROCESS pass. Negative values disable
// process reporting unless WithProcessIDFromData is set.
func WithProcessID(pid int) Option {
	return func(s *Selector) {
		s.processID = pid
	}
}

// WithProcessIDFromData makes renderers take process ids from their data
// instead of the configured process id.
func WithProcessIDFromData(on bool) Option {
	return func(s *Selector) {
		s.processFromData = on
	}
}

// WithCellGridTracking enables the CELLGRID passes.
func WithCellGridTracking(on bool) Option {
	return func(s *Selector) {
		s.cellGrid = on
	}
}
