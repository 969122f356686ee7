// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/pick/render"
	"github.com/gogpu/wgpu/hal"
)

// Device errors.
var (
	// ErrNoDevice is returned for a nil or null device handle.
	ErrNoDevice = errors.New("wgpu: no GPU device")

	// ErrNoHAL is returned when the handle does not expose HAL types.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL types")
)

// halProvider is implemented by device providers that share their HAL
// device and queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halResources extracts the HAL device and queue behind h.
func halResources(h render.DeviceHandle) (hal.Device, hal.Queue, error) {
	if render.IsNull(h) {
		return nil, nil, ErrNoDevice
	}
	hp, ok := h.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return device, queue, nil
}
