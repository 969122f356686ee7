package backend

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/pick"
)

// Factory creates a backend for cfg.
type Factory func(cfg Config) (Backend, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// New creates the backend registered under name.
func New(name string, cfg Config) (Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(cfg)
}

// Default returns the first backend in priority order that can run with
// cfg, then any other registered backend.
func Default(cfg Config) (Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	registryMu.RLock()
	names := slices.Clone(backendPriority)
	for _, name := range slices.Sorted(maps.Keys(backends)) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	registryMu.RUnlock()

	for _, name := range names {
		if !IsRegistered(name) {
			continue
		}
		b, err := New(name, cfg)
		if err == nil {
			return b, nil
		}
		pick.Logger().Debug("backend: skipped",
			slog.String("backend", name),
			slog.String("reason", err.Error()))
	}
	return nil, ErrBackendNotAvailable
}
