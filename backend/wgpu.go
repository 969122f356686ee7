//go:build !nogpu

package backend

import (
	"fmt"

	"github.com/gogpu/pick/backend/wgpu"
	"github.com/gogpu/pick/render"
)

// WGPUBackend is the GPU backend. It draws on the host device from
// Config.Device and captures no depth.
type WGPUBackend struct {
	*wgpu.Renderer
}

// init registers the wgpu backend on package import.
func init() {
	Register(BackendWGPU, func(cfg Config) (Backend, error) {
		return NewWGPUBackend(cfg)
	})
}

// NewWGPUBackend creates a GPU backend on cfg.Device.
func NewWGPUBackend(cfg Config) (*WGPUBackend, error) {
	if render.IsNull(cfg.Device) {
		return nil, fmt.Errorf("%w: %s needs a GPU device", ErrBackendNotAvailable, BackendWGPU)
	}
	r, err := wgpu.NewRenderer(cfg.Device, cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendNotAvailable, err)
	}
	return &WGPUBackend{Renderer: r}, nil
}

// Name returns the backend identifier.
func (b *WGPUBackend) Name() string {
	return BackendWGPU
}

// Close releases the GPU pipeline and target.
func (b *WGPUBackend) Close() {
	b.Destroy()
}

// Ensure WGPUBackend implements Backend.
var _ Backend = (*WGPUBackend)(nil)
