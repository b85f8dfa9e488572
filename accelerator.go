package camconv

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the accelerator cannot handle this frame.
// The caller should transparently fall back to CPU conversion.
var ErrFallbackToCPU = errors.New("camconv: falling back to CPU conversion")

// GPUAccelerator is an optional GPU conversion provider.
//
// When registered via RegisterAccelerator, ConvertInto tries GPU
// conversion first. If the accelerator returns ErrFallbackToCPU or any
// error, conversion transparently falls back to the CPU reference.
//
// Implementations are provided by GPU backend packages. Users opt in via
// blank import:
//
//	import _ "github.com/gogpu/camconv/gpu" // enables GPU conversion
type GPUAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu-convert").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// Convert runs the conversion kernel for the frame's format and
	// writes RGBA8 into dst. The frame is already validated. Returns
	// ErrFallbackToCPU if the frame cannot be GPU-converted.
	Convert(f *Frame, dst []byte) error
}

// DeviceProviderAware is an optional interface for accelerators that can
// share GPU resources with an external provider (e.g., a gogpu window).
// When SetDeviceProvider is called, the accelerator reuses the provided
// GPU device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator registers a GPU accelerator for optional GPU
// conversion.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration. If Init() fails, the accelerator is not registered and
// the error is returned.
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("camconv: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Accelerator returns the currently registered accelerator, or nil.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator, enabling GPU device sharing. If no accelerator is
// registered or it doesn't support device sharing, this is a no-op.
//
// The provider should implement HalDevice() any and HalQueue() any
// methods that return wgpu/hal types.
func SetAcceleratorDeviceProvider(provider any) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
