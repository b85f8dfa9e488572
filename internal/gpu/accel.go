// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/camconv"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ConvertAccelerator converts camera frames on the GPU using wgpu/hal
// compute shaders. It implements the camconv.GPUAccelerator interface.
//
// When GPU initialization fails (no Vulkan, no adapters) the accelerator
// stays registered but returns ErrFallbackToCPU from Convert, so callers
// transparently get the CPU reference path.
type ConvertAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	dispatcher *Dispatcher

	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var _ camconv.GPUAccelerator = (*ConvertAccelerator)(nil)
var _ camconv.DeviceProviderAware = (*ConvertAccelerator)(nil)

func (a *ConvertAccelerator) Name() string { return "wgpu-convert" }

// Init brings up the GPU. A failed bring-up is not an error: the
// accelerator degrades to permanent CPU fallback.
func (a *ConvertAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		slogger().Warn("camconv gpu: GPU init failed, using CPU fallback", "error", err)
	}
	return nil
}

func (a *ConvertAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dispatcher != nil {
		a.dispatcher.Close()
		a.dispatcher = nil
	}
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
			a.device = nil
		}
		if a.instance != nil {
			a.instance.Destroy()
			a.instance = nil
		}
	} else {
		// Don't destroy shared resources — we don't own them
		a.device = nil
		a.instance = nil
	}
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// Convert dispatches the conversion kernel for the frame's format.
// Returns camconv.ErrFallbackToCPU when the GPU is unavailable.
func (a *ConvertAccelerator) Convert(f *camconv.Frame, dst []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady || a.dispatcher == nil {
		return camconv.ErrFallbackToCPU
	}
	return a.dispatcher.Convert(f, dst)
}

// SetDeviceProvider switches the accelerator to use a shared GPU device
// from an external provider (e.g., a gogpu window). The provider must
// implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func (a *ConvertAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("camconv gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("camconv gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("camconv gpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Destroy own resources if we created them
	if a.dispatcher != nil {
		a.dispatcher.Close()
		a.dispatcher = nil
	}
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	// Use provided resources
	a.device = device
	a.queue = queue
	a.externalDevice = true

	// Recreate pipelines with shared device
	a.dispatcher = NewDispatcher(a.device, a.queue)
	if err := a.dispatcher.Init(); err != nil {
		a.dispatcher = nil
		a.gpuReady = false
		return fmt.Errorf("camconv gpu: create pipelines with shared device: %w", err)
	}
	a.gpuReady = true
	slogger().Info("camconv gpu: switched to shared GPU device")
	return nil
}

// SetLogger routes this package's logging to the given logger. Called by
// camconv.SetLogger propagation.
func (a *ConvertAccelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

func (a *ConvertAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue

	a.dispatcher = NewDispatcher(a.device, a.queue)
	if err := a.dispatcher.Init(); err != nil {
		a.dispatcher = nil
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	a.gpuReady = true
	slogger().Info("camconv gpu: accelerator initialized", "adapter", selected.Info.Name)
	return nil
}
