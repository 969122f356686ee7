package backend

import (
	"github.com/gogpu/pick/backend/software"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU rasteriser backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU backend (gogpu/wgpu HAL).
	BackendWGPU = "wgpu"
)

// SoftwareBackend is the CPU backend. It always has a depth plane, so
// selections can capture Z values.
type SoftwareBackend struct {
	*software.Renderer
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func(cfg Config) (Backend, error) {
		return NewSoftwareBackend(cfg.Width, cfg.Height), nil
	})
}

// NewSoftwareBackend creates a software backend for a width x height
// viewport.
func NewSoftwareBackend(width, height int) *SoftwareBackend {
	return &SoftwareBackend{Renderer: software.NewRenderer(width, height)}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Close is a no-op; the software backend holds only Go memory.
func (b *SoftwareBackend) Close() {}

// Ensure SoftwareBackend implements Backend.
var _ Backend = (*SoftwareBackend)(nil)
