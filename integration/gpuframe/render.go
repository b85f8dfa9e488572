// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuframe

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when the draw context doesn't implement
	// gpucontext.TextureDrawer.
	ErrInvalidDrawContext = errors.New("gpuframe: dc must implement gpucontext.TextureDrawer")

	// ErrInvalidRenderer is returned when the renderer doesn't implement
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("gpuframe: renderer must implement gpucontext.TextureCreator")
)

// RenderOptions controls how the view is rendered to the target.
type RenderOptions struct {
	// X, Y is the position to draw the texture (default: 0, 0)
	X, Y float32
}

// DefaultRenderOptions returns options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{X: 0, Y: 0}
}

// RenderTo draws the view content to a gpucontext.TextureDrawer.
// This is the primary integration method.
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
// The converted frame is flushed to GPU and drawn at position (0, 0).
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    view.RenderTo(dc.AsTextureDrawer())
//	})
//
// Returns error if:
//   - View is closed
//   - Texture creation or drawing fails
func (v *View) RenderTo(dc gpucontext.TextureDrawer) error {
	return v.RenderToEx(dc, DefaultRenderOptions())
}

// RenderToEx draws the view with additional options.
//
// Example:
//
//	view.RenderToEx(dc.AsTextureDrawer(), gpuframe.RenderOptions{X: 100, Y: 50})
func (v *View) RenderToEx(dc gpucontext.TextureDrawer, opts RenderOptions) error {
	if v.closed {
		return ErrViewClosed
	}

	// Flush to ensure the texture sees the latest converted frame
	tex, err := v.Flush()
	if err != nil {
		return err
	}

	// If texture is pending (placeholder), create real GPU texture now
	if pending, isPending := tex.(*pendingTexture); isPending {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		// NewTextureFromRGBA calls WriteTexture which does waitForGPU internally.
		// After this returns, ALL prior GPU work is complete, so it's safe to
		// destroy the old texture (its descriptor heap entries are no longer in use).
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("gpuframe: NewTextureFromRGBA failed: %w", err)
		}

		v.texture = realTex
		tex = realTex

		// NOW safe to destroy the old texture — GPU is idle after WriteTexture's wait.
		// This prevents use-after-free where the GPU reads freed descriptor heap entries.
		if v.oldTexture != nil {
			if destroyer, ok := v.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			v.oldTexture = nil
		}
	}

	// Get gpucontext.Texture for drawing
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}

	return dc.DrawTexture(gpuTex, opts.X, opts.Y)
}

// RenderToPosition is a convenience method for rendering at a specific position.
//
//	view.RenderToPosition(dc.AsTextureDrawer(), 100, 50)
func (v *View) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	return v.RenderToEx(dc, RenderOptions{X: x, Y: y})
}
