package pick

// Drawable is one pickable unit of a scene, as the renderer sees it.
// Selection only stores and returns it; typically it is a pointer to the
// renderer's own mesh or actor type.
type Drawable any

// Renderer draws the scene for one selection pass.
//
// RenderPass must draw every drawable in the same order on every pass,
// bracketing each with BeginRenderProp/EndRenderProp and emitting the
// colours the Selector hands out for the current pass instead of visible
// colours. Blending, antialiasing and multisampling must be off.
type Renderer interface {
	RenderPass(s *Selector, pass Pass) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(s *Selector, pass Pass) error

// RenderPass calls f(s, pass).
func (f RendererFunc) RenderPass(s *Selector, pass Pass) error {
	return f(s, pass)
}

// DeviceHooks is the device-specific part of selection. A backend supplies
// one implementation at construction (see WithDeviceHooks); the Selector
// calls it around every drawable and every captured pass.
//
// Typical uses: turning blending and multisampling off for the duration of
// a drawable, clearing the target to the background colour before a pass.
type DeviceHooks interface {
	// BeginRenderProp runs after a drawable was assigned its prop id and
	// before it is drawn.
	BeginRenderProp(s *Selector)

	// EndRenderProp runs after a drawable was drawn.
	EndRenderProp(s *Selector)

	// PreCapturePass runs before the renderer draws pass.
	PreCapturePass(s *Selector, pass Pass)

	// PostCapturePass runs after pass was drawn and saved.
	PostCapturePass(s *Selector, pass Pass)
}

// NopDeviceHooks is the DeviceHooks used when none is configured.
type NopDeviceHooks struct{}

func (NopDeviceHooks) BeginRenderProp(*Selector)       {}
func (NopDeviceHooks) EndRenderProp(*Selector)         {}
func (NopDeviceHooks) PreCapturePass(*Selector, Pass)  {}
func (NopDeviceHooks) PostCapturePass(*Selector, Pass) {}

// PixelProcessor is implemented by drawables whose passes render an
// intermediate encoding, such as a local primitive index, that has to be
// translated into final attribute ids.
//
// After each pass buffer is saved, ProcessSelectorPixelBuffers is called for
// every hit drawable that implements it, with the indices (y*width+x,
// relative to the capture area) of the pixels the drawable covered in the
// ACTOR pass. It reads the raw buffers with Selector.RawPixel and rewrites
// the processed buffer with Selector.SetProcessedPixel.
type PixelProcessor interface {
	ProcessSelectorPixelBuffers(s *Selector, pass Pass, pixels []int)
}

// Ensure NopDeviceHooks implements DeviceHooks.
var _ DeviceHooks = NopDeviceHooks{}
