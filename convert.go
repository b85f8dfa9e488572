// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camconv

import "errors"

// Convert converts a frame to a freshly allocated RGBA8 buffer of exactly
// width*height pixels, R in the lowest-addressed byte.
func Convert(f *Frame) ([]byte, error) {
	dst := make([]byte, f.OutputSize())
	if err := ConvertInto(f, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// ConvertInto converts a frame into dst, which must hold at least
// width*height RGBA8 pixels. If a GPU accelerator is registered it is
// tried first; on ErrFallbackToCPU or any other error the CPU reference
// kernels run instead, so a successful return always means dst holds the
// converted image.
//
// Re-running ConvertInto over identical inputs produces bit-identical
// output: the kernels are pure and the CPU and GPU paths agree byte for
// byte.
func ConvertInto(f *Frame, dst []byte) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if len(dst) < f.OutputSize() {
		return ErrOutputSize
	}

	if a := Accelerator(); a != nil {
		err := a.Convert(f, dst)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("camconv: accelerator failed, converting on CPU",
				"accelerator", a.Name(), "format", f.Format.String(), "err", err)
		}
	}

	convertCPU(f, dst)
	return nil
}

// convertCPU runs the CPU reference kernel for the frame's format. The
// frame must already be validated.
func convertCPU(f *Frame, dst []byte) {
	switch f.Format {
	case FormatUYVY:
		convertUYVY(f, dst)
	case FormatNV21:
		convertNV21(f, dst)
	case FormatGray8:
		convertGray8(f, dst)
	}
}

// forEachInvocation walks the dispatch grid exactly as the GPU does: one
// 16x16 tile per workgroup, ceil(w/16) x ceil(h/16) workgroups, one
// invocation per output pixel. The boundary guard is applied here, before
// fn, so kernels see only in-range coordinates -- mirroring the early
// return at the top of every WGSL kernel. Each in-range (x, y) is visited
// exactly once.
func forEachInvocation(p Params, fn func(x, y uint32)) {
	tilesX, tilesY := p.DispatchSize()
	for ty := uint32(0); ty < tilesY; ty++ {
		for tx := uint32(0); tx < tilesX; tx++ {
			for ly := uint32(0); ly < TileSize; ly++ {
				for lx := uint32(0); lx < TileSize; lx++ {
					x := tx*TileSize + lx
					y := ty*TileSize + ly
					if x >= p.Width || y >= p.Height {
						continue
					}
					fn(x, y)
				}
			}
		}
	}
}

// storeRGBA writes one output texel at pixel index i. Alpha is always
// fully opaque; every kernel funnels its final write through here.
func storeRGBA(dst []byte, i uint32, r, g, b float32) {
	o := i * 4
	dst[o+0] = quant8(r)
	dst[o+1] = quant8(g)
	dst[o+2] = quant8(b)
	dst[o+3] = 0xFF
}
