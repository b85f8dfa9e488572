//go:build !nogpu

// Package gpu registers the GPU conversion accelerator.
//
// Import this package to enable GPU-accelerated pixel format conversion.
// The accelerator uses wgpu/hal compute shaders, one kernel per source
// format, and is tried automatically by camconv.Convert.
//
// If GPU initialization fails (no Vulkan available, no adapters), the
// registration is silently skipped and conversion falls back to the CPU
// reference kernels.
//
// Usage:
//
//	import _ "github.com/gogpu/camconv/gpu" // enable GPU conversion
package gpu

import (
	"github.com/gogpu/camconv"
	gpuimpl "github.com/gogpu/camconv/internal/gpu"
)

func init() {
	accel := &gpuimpl.ConvertAccelerator{}
	if err := camconv.RegisterAccelerator(accel); err != nil {
		camconv.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider configures the conversion accelerator to use a shared
// GPU device from an external provider (e.g., a gogpu window). This
// avoids creating a separate GPU instance and enables efficient device
// sharing with an application that already renders.
//
// The provider should be a gpucontext.DeviceProvider that also implements
// gpucontext.HalProvider for direct HAL access.
func SetDeviceProvider(provider any) error {
	return camconv.SetAcceleratorDeviceProvider(provider)
}
