// Package camconv converts camera-sensor pixel encodings to RGBA8.
//
// # Overview
//
// camconv takes raw frames as they arrive from capture hardware -- packed
// 4:2:2 (UYVY), semi-planar 4:2:0 (NV21), or single-channel luminance
// (Gray8) -- and produces a uniform RGBA8 image suitable for display or
// further processing. Conversion runs as per-pixel compute kernels on the
// GPU via gogpu/wgpu when an accelerator is registered, with a
// bit-identical CPU reference used as transparent fallback.
//
// # Quick Start
//
//	import "github.com/gogpu/camconv"
//
//	frame, err := camconv.NewUYVYFrame(width, height, packed)
//	if err != nil {
//	    return err
//	}
//	rgba, err := camconv.Convert(frame)
//
// To enable GPU conversion, blank-import the accelerator package:
//
//	import _ "github.com/gogpu/camconv/gpu" // enable GPU conversion
//
// GPU acceleration is opt-in via RegisterAccelerator; without it all
// conversion happens on the CPU.
//
// # Color space
//
// The only supported color matrix is BT.601 with limited (16-235) luma
// range, which is what standard-definition camera pipelines emit. Output
// alpha is always fully opaque.
//
// # Architecture
//
//   - Public API: Frame, PixelFormat, Params, Convert
//   - internal/gpu: wgpu compute dispatch of the three WGSL kernels
//   - integration/gpuframe: GPU device sharing with a gogpu host app
package camconv
