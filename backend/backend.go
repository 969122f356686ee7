package backend

import (
	"errors"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/render"
	"github.com/gogpu/pick/scene"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or cannot run with the given configuration.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidSize is returned for a non-positive viewport.
	ErrInvalidSize = errors.New("backend: invalid viewport size")
)

// Config describes the viewport a backend renders.
type Config struct {
	Width, Height int

	// Device is the host GPU device. GPU backends are unavailable when it
	// is nil or a render.NullDeviceHandle.
	Device render.DeviceHandle
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	return nil
}

// Backend is a scene plus the renderer that draws its selection passes.
//
// Backends must be registered via Register() and are selected via
// New() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Add validates a and appends it to the scene.
	Add(a *scene.Actor) error

	// Actors returns the scene in drawing order.
	Actors() []*scene.Actor

	// Options returns the selector options that capture with this
	// backend: renderer, render target and device hooks.
	Options() []pick.Option

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()
}
