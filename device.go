// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// shade RECEIVES the device from the host, it does not create one.
// This keeps shader modules, buffers and bind groups on the same
// device the host renders with. DeviceHandle is an alias for
// gpucontext.DeviceProvider, so hosts from the gpucontext ecosystem
// (e.g. gogpu.App) plug in without glue code.
type DeviceHandle = gpucontext.DeviceProvider

// HALFromProvider extracts the hal device and queue from a host
// provider. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func HALFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("shade: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("shade: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("shade: provider HalQueue is not hal.Queue")
	}
	return device, queue, nil
}

// NewBindingsFrom creates a binding cache on the device of a host
// provider.
func NewBindingsFrom(provider DeviceHandle, layout *Layout) (*Bindings, error) {
	device, queue, err := HALFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewBindings(device, queue, layout)
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used where shader composition runs without a GPU, e.g. offline
// validation and reflection.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
