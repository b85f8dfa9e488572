// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// CPU reference for the semi-planar 4:2:0 kernel. Mirrors
// shaders/nv21.wgsl invocation for invocation.

package camconv

// convertNV21 converts a semi-planar 4:2:0 frame to RGBA8.
//
// Luma is sampled at full resolution at (x, y). Chroma is sampled at
// (x/2, y/2) from the interleaved plane, whose texels store V in the
// first byte and U in the second -- the reverse of NV12. That ordering is
// the defining property of the format: swapping it silently corrupts
// color, so the bytes are read positionally and passed to the transform
// as (u=second, v=first).
func convertNV21(f *Frame, dst []byte) {
	p := f.Params()
	cw := packedWidth(p.Width)
	luma := f.Luma
	chroma := f.Chroma

	forEachInvocation(p, func(x, y uint32) {
		ly := norm8(luma[y*p.Width+x])

		c := ((y/2)*cw + x/2) * 2
		v := norm8(chroma[c+0])
		u := norm8(chroma[c+1])

		r, g, b := yuvToRGB(ly, u, v)
		storeRGBA(dst, y*p.Width+x, r, g, b)
	})
}
