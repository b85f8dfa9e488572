// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// CPU reference for the UYVY kernel. Mirrors shaders/uyvy.wgsl
// invocation for invocation; addressing and arithmetic must stay in
// lockstep with the shader.

package camconv

// convertUYVY converts a packed 4:2:2 frame to RGBA8.
//
// Each packed texel holds (U, Y0, V, Y1) for two horizontally adjacent
// output pixels: luma comes from Y0 for even x and Y1 for odd x, while
// both pixels share the texel's chroma pair. The packed surface has
// ceil(width/2) texel columns; for odd widths the final column consumes
// only the Y0 half of the last texel, whose Y1 byte must still be present
// (Frame.Validate enforces the allocation).
func convertUYVY(f *Frame, dst []byte) {
	p := f.Params()
	pw := packedWidth(p.Width)
	src := f.Packed

	forEachInvocation(p, func(x, y uint32) {
		t := (y*pw + x/2) * 4
		u := norm8(src[t+0])
		v := norm8(src[t+2])

		luma := norm8(src[t+1]) // Y0, even columns
		if x&1 != 0 {
			luma = norm8(src[t+3]) // Y1, odd columns
		}

		r, g, b := yuvToRGB(luma, u, v)
		storeRGBA(dst, y*p.Width+x, r, g, b)
	})
}
