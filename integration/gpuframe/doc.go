// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuframe provides seamless integration between camconv frame
// conversion and gogpu GPU-accelerated windows.
//
// This package enables presenting camera frames directly in GPU windows
// by managing the convert-and-upload pipeline automatically. The data
// flow is:
//
//	camconv.Frame -> RGBA8 (Convert) -> GPU Texture -> Window
//
// # Architecture
//
// View holds the RGBA output buffer and manages the texture upload
// pipeline:
//
//   - Push() converts an incoming frame into the view's RGBA buffer
//   - Flush() uploads pixel data to the GPU texture
//   - RenderTo() draws the texture to a gogpu window
//
// Creating a View also shares the window's GPU device with the
// conversion accelerator, so conversion and presentation run on the same
// device without an extra GPU instance.
//
// # Usage
//
// Basic usage with gogpu:
//
//	view, err := gpuframe.New(app.GPUContextProvider(), 640, 480)
//	defer view.Close()
//
//	// Per captured frame:
//	frame, _ := camconv.NewUYVYFrame(640, 480, packed)
//	view.Push(frame)
//
//	// Render to gogpu window
//	view.RenderTo(dc)
//
// # Thread Safety
//
// View is NOT safe for concurrent use. Create one View per goroutine, or
// use external synchronization.
//
// # Integration Without Circular Imports
//
// This package uses interfaces to avoid importing gogpu directly:
//
//   - gpucontext.DeviceProvider for device access
//   - gpucontext.TextureDrawer and TextureCreator for presentation
//
// This allows camconv to provide integration without creating circular
// dependencies.
package gpuframe
