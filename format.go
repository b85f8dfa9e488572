package camconv

import "fmt"

// PixelFormat identifies the source pixel encoding of a camera frame.
type PixelFormat uint8

const (
	// FormatUYVY is packed 4:2:2 YUV. Each four-byte texel (U, Y0, V, Y1)
	// carries luma for two horizontally adjacent pixels and one shared
	// chroma pair.
	FormatUYVY PixelFormat = iota

	// FormatNV21 is semi-planar 4:2:0 YUV: a full-resolution luma plane
	// followed by a half-resolution interleaved chroma plane with V before
	// U. The V-first byte order is what distinguishes NV21 from NV12.
	FormatNV21

	// FormatGray8 is a single full-resolution luminance plane, broadcast
	// to RGB on conversion with no color transform.
	FormatGray8
)

// String returns the conventional name of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatUYVY:
		return "UYVY"
	case FormatNV21:
		return "NV21"
	case FormatGray8:
		return "Gray8"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(f))
	}
}

// Description returns a human-readable description for diagnostics display.
func (f PixelFormat) Description() string {
	switch f {
	case FormatUYVY:
		return "packed 4:2:2 YUV"
	case FormatNV21:
		return "semi-planar 4:2:0 YUV (V/U interleaved)"
	case FormatGray8:
		return "single-channel luminance"
	default:
		return "unknown pixel format"
	}
}

// PlaneCount returns the number of input surfaces the format uses.
func (f PixelFormat) PlaneCount() int {
	switch f {
	case FormatNV21:
		return 2
	case FormatUYVY, FormatGray8:
		return 1
	default:
		return 0
	}
}
