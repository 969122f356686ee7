package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/render"
	"github.com/gogpu/pick/scene"
	"golang.org/x/image/math/f64"
)

func TestSoftwareBackendName(t *testing.T) {
	b := NewSoftwareBackend(4, 4)
	if b.Name() != "software" {
		t.Errorf("Name() = %q, want %q", b.Name(), "software")
	}
	b.Close()
}

func TestSoftwareBackendSelect(t *testing.T) {
	b, err := New(BackendSoftware, Config{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	a := scene.NewActor(&scene.Mesh{
		Points: []f64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		Cells:  [][3]int{{0, 1, 2}, {0, 2, 3}},
	})
	if err := b.Add(a); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := b.Actors(); len(got) != 1 || got[0] != a {
		t.Fatalf("Actors() = %v", got)
	}

	s := pick.NewSelector(append(b.Options(), pick.WithArea(0, 0, 7, 7))...)
	sel, err := s.Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Len() != 1 || sel.Node(0).Prop != a {
		t.Errorf("Select() = %d nodes, want the actor", sel.Len())
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("vulkan", Config{Width: 1, Height: 1}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("New() error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(BackendSoftware, Config{Width: 0, Height: 4}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("New() error = %v, want ErrInvalidSize", err)
	}
	if _, err := Default(Config{Width: 4, Height: -1}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Default() error = %v, want ErrInvalidSize", err)
	}
}

func TestDefaultFallsBackToSoftware(t *testing.T) {
	b, err := Default(Config{Width: 4, Height: 4, Device: render.NullDeviceHandle{}})
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	defer b.Close()
	if b.Name() != BackendSoftware {
		t.Errorf("Default() = %q, want %q without a GPU device", b.Name(), BackendSoftware)
	}
}

func TestRegistry(t *testing.T) {
	const name = "test-backend"
	Register(name, func(cfg Config) (Backend, error) {
		return NewSoftwareBackend(cfg.Width, cfg.Height), nil
	})
	if !IsRegistered(name) {
		t.Fatal("IsRegistered() = false after Register")
	}
	if !slices.Contains(Available(), name) {
		t.Errorf("Available() = %v, missing %q", Available(), name)
	}
	if !slices.IsSorted(Available()) {
		t.Errorf("Available() = %v, not sorted", Available())
	}

	Unregister(name)
	if IsRegistered(name) {
		t.Error("IsRegistered() = true after Unregister")
	}
}

func TestDefaultNoBackends(t *testing.T) {
	saved := make(map[string]Factory)
	registryMu.Lock()
	for k, v := range backends {
		saved[k] = v
		delete(backends, k)
	}
	registryMu.Unlock()
	defer func() {
		registryMu.Lock()
		for k, v := range saved {
			backends[k] = v
		}
		registryMu.Unlock()
	}()

	if _, err := Default(Config{Width: 1, Height: 1}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Default() error = %v, want ErrBackendNotAvailable", err)
	}
}
