// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camconv

import "encoding/binary"

// TileSize is the fixed execution tile edge shared by all conversion
// kernels: each GPU workgroup covers a 16x16 block of output pixels, and
// the CPU reference walks the same grid. The value is part of the public
// contract; hosts dispatch ceil(width/16) x ceil(height/16) tiles.
const TileSize = 16

// ParamsSize is the byte size of the serialized parameter record:
// four u32 fields, naturally aligned for uniform-buffer consumption.
const ParamsSize = 16

// Params is the immutable per-dispatch parameter record shared by all
// three kernels. Width and Height must be the exact pixel dimensions used
// to size the output surface and to derive the input plane extents; the
// kernels trust them without runtime checks.
//
// The struct must match the Params uniform in every WGSL kernel: four
// consecutive u32 fields. The two reserved fields are fixed at zero.
type Params struct {
	// Width is the output image width in pixels.
	Width uint32

	// Height is the output image height in pixels.
	Height uint32

	// Reserved0 pads the record to 16 bytes. Always zero.
	Reserved0 uint32

	// Reserved1 pads the record to 16 bytes. Always zero.
	Reserved1 uint32
}

// ToBytes serializes the record in little-endian order for uniform upload.
// The layout matches the WGSL Params struct: 4 consecutive u32 fields.
func (p Params) ToBytes() []byte {
	buf := make([]byte, ParamsSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], p.Width)
	le.PutUint32(buf[4:8], p.Height)
	le.PutUint32(buf[8:12], p.Reserved0)
	le.PutUint32(buf[12:16], p.Reserved1)
	return buf
}

// DispatchSize returns the tile grid covering the image: ceiling division
// of each dimension by TileSize. Tiles on the right and bottom edges may
// extend past the image; the kernels' boundary guard discards those
// invocations before any read or write.
func (p Params) DispatchSize() (x, y uint32) {
	return ceilDiv(p.Width, TileSize), ceilDiv(p.Height, TileSize)
}

// ceilDiv returns ceil(n / d) for unsigned inputs.
func ceilDiv(n, d uint32) uint32 {
	return (n + d - 1) / d
}

// packedWidth returns the packed/chroma texel column count ceil(w/2).
// UYVY packs two output pixels per texel; NV21 halves chroma horizontally.
func packedWidth(w uint32) uint32 {
	return ceilDiv(w, 2)
}
