// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuframe

import (
	"errors"
	"fmt"

	"github.com/gogpu/camconv"
	"github.com/gogpu/gpucontext"
)

// Common errors returned by View operations.
var (
	// ErrViewClosed is returned when operations are attempted on a closed view.
	ErrViewClosed = errors.New("gpuframe: view is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("gpuframe: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("gpuframe: nil DeviceProvider")

	// ErrNilFrame is returned when a nil frame is pushed.
	ErrNilFrame = errors.New("gpuframe: nil frame")

	// ErrFrameSize is returned when a pushed frame's dimensions don't
	// match the view.
	ErrFrameSize = errors.New("gpuframe: frame dimensions don't match view")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// View converts camera frames and presents them in a gogpu window.
// It manages the convert-and-upload pipeline automatically.
//
// View is NOT safe for concurrent use. Create one View per goroutine,
// or use external synchronization.
type View struct {
	provider    gpucontext.DeviceProvider
	rgba        []byte // Converted output, width*height*4 bytes
	texture     any    // Lazy-created texture (*gogpu.Texture)
	oldTexture  any    // Previous texture awaiting deferred destruction
	dirty       bool   // Needs GPU upload
	sizeChanged bool   // Resize pending — texture must be recreated
	width       int
	height      int
	closed      bool
}

// New creates a View for integrated mode.
// The provider should come from gogpu.App.GPUContextProvider().
//
// New shares the provider's GPU device with the conversion accelerator
// when one is registered, so frames convert on the same device the
// window renders with.
//
// Returns error if dimensions are invalid or provider is nil.
func New(provider gpucontext.DeviceProvider, width, height int) (*View, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	// Share GPU device with accelerator if registered.
	// Error is non-fatal: accelerator may not support device sharing or
	// provider may not implement HalProvider. GPU will initialize its own device.
	_ = camconv.SetAcceleratorDeviceProvider(provider)

	return &View{
		provider: provider,
		rgba:     make([]byte, width*height*4),
		width:    width,
		height:   height,
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(provider gpucontext.DeviceProvider, width, height int) *View {
	v, err := New(provider, width, height)
	if err != nil {
		panic(err)
	}
	return v
}

// Width returns the view width in pixels.
func (v *View) Width() int {
	return v.width
}

// Height returns the view height in pixels.
func (v *View) Height() int {
	return v.height
}

// Size returns width and height as a convenience.
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// Push converts a frame into the view's RGBA buffer and marks the view
// for GPU upload on next Flush(). The frame's dimensions must match the
// view's.
func (v *View) Push(f *camconv.Frame) error {
	if v.closed {
		return ErrViewClosed
	}
	if f == nil {
		return ErrNilFrame
	}
	if f.Width != v.width || f.Height != v.height {
		return fmt.Errorf("%w: frame %dx%d, view %dx%d",
			ErrFrameSize, f.Width, f.Height, v.width, v.height)
	}
	if err := camconv.ConvertInto(f, v.rgba); err != nil {
		return fmt.Errorf("gpuframe: convert failed: %w", err)
	}
	v.dirty = true
	return nil
}

// RGBA returns the view's converted pixel buffer. The buffer is reused
// across Push calls; copy it if you need the data past the next Push.
func (v *View) RGBA() []byte {
	if v.closed {
		return nil
	}
	return v.rgba
}

// IsDirty returns true if the view has a converted frame that has not
// been uploaded to the GPU yet.
func (v *View) IsDirty() bool {
	return v.dirty
}

// Resize changes view dimensions.
// This reallocates the RGBA buffer and recreates the texture on next
// render. The view content is cleared.
//
// Returns error if dimensions are invalid or view is closed.
func (v *View) Resize(width, height int) error {
	if v.closed {
		return ErrViewClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	// No-op if dimensions haven't changed
	if v.width == width && v.height == height {
		return nil
	}

	v.rgba = make([]byte, width*height*4)
	v.width = width
	v.height = height
	v.sizeChanged = true
	v.dirty = true

	return nil
}

// Flush uploads the converted frame to the GPU texture if dirty.
// Returns the texture for manual drawing if needed.
//
// The texture is created lazily on first Flush().
// Subsequent calls only upload data if dirty flag is set.
//
// Returns error if the view is closed.
func (v *View) Flush() (any, error) {
	if v.closed {
		return nil, ErrViewClosed
	}

	// If size changed, defer old texture destruction until after GPU is idle.
	// The old texture may still be referenced by in-flight GPU command buffers.
	// Destroying it now would free descriptor heap entries that the GPU is
	// reading. Keep it alive and destroy it in RenderToEx after the texture
	// creator's internal GPU wait.
	if v.sizeChanged {
		if v.texture != nil {
			// Destroy any previously deferred texture first
			if v.oldTexture != nil {
				if destroyer, ok := v.oldTexture.(textureDestroyer); ok {
					destroyer.Destroy()
				}
			}
			v.oldTexture = v.texture
			v.texture = nil
		}
		v.sizeChanged = false
	}

	// Skip if not dirty
	if !v.dirty && v.texture != nil {
		return v.texture, nil
	}

	// Create texture if needed (lazy initialization)
	if v.texture == nil {
		v.texture = &pendingTexture{
			width:  v.width,
			height: v.height,
			data:   v.rgba,
		}
		v.dirty = false
		return v.texture, nil
	}

	// Update existing texture
	if updater, ok := v.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(v.rgba); err != nil {
			return nil, fmt.Errorf("gpuframe: texture update failed: %w", err)
		}
	}

	v.dirty = false
	return v.texture, nil
}

// Texture returns the current GPU texture without flushing.
// Returns nil if the texture hasn't been created yet.
//
// Use Flush() to ensure the texture exists and is up-to-date.
func (v *View) Texture() any {
	return v.texture
}

// Close releases all resources associated with the View.
// After Close, the View should not be used.
// Close is idempotent - multiple calls are safe.
func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	// Destroy textures (current and any deferred old texture)
	if v.oldTexture != nil {
		if destroyer, ok := v.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		v.oldTexture = nil
	}
	if v.texture != nil {
		if destroyer, ok := v.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		v.texture = nil
	}

	v.rgba = nil
	v.provider = nil
	return nil
}

// pendingTexture is a placeholder for texture creation.
// It holds the data needed to create a real texture when we have
// access to a textureCreator (during RenderTo).
type pendingTexture struct {
	width  int
	height int
	data   []byte
}

// Provider returns the DeviceProvider associated with this view.
// Returns nil if the view is closed.
func (v *View) Provider() gpucontext.DeviceProvider {
	if v.closed {
		return nil
	}
	return v.provider
}
