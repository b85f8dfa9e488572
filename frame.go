package camconv

import (
	"errors"
	"fmt"
)

// Frame validation errors.
var (
	// ErrInvalidDimensions is returned when width or height is not positive
	// or exceeds the addressable range.
	ErrInvalidDimensions = errors.New("camconv: invalid frame dimensions")

	// ErrPlaneSize is returned when an input plane is smaller than the
	// extent derived from the frame dimensions.
	ErrPlaneSize = errors.New("camconv: input plane too small")

	// ErrOutputSize is returned when a destination buffer cannot hold
	// width*height RGBA8 pixels.
	ErrOutputSize = errors.New("camconv: output buffer too small")

	// ErrUnknownFormat is returned for a PixelFormat this package does not
	// implement.
	ErrUnknownFormat = errors.New("camconv: unknown pixel format")
)

// maxDimension bounds width and height so that all derived byte offsets
// fit comfortably in uint32 texel indices on the GPU side.
const maxDimension = 1 << 15

// Frame is one camera frame awaiting conversion: the input surface(s) and
// the dimensions shared with the parameter record. The frame borrows the
// plane slices; it never copies or mutates them. A Frame is transient --
// it carries no state beyond one conversion and may be rebuilt per capture.
//
// Plane layouts (all tightly packed, row-major):
//
//	UYVY:  Packed, ceil(w/2)*h texels of 4 bytes (U, Y0, V, Y1)
//	NV21:  Luma, w*h bytes; Chroma, ceil(w/2)*ceil(h/2) texels of
//	       2 bytes (V, U)
//	Gray8: Luma, w*h bytes
type Frame struct {
	Format PixelFormat
	Width  int
	Height int

	// Packed is the UYVY input surface.
	Packed []byte

	// Luma is the full-resolution luminance plane (NV21, Gray8).
	Luma []byte

	// Chroma is the half-resolution interleaved V/U plane (NV21).
	Chroma []byte
}

// NewUYVYFrame builds a packed 4:2:2 frame. The packed plane must hold at
// least ceil(width/2)*height four-byte texels; when width is odd the last
// texel of each row still carries a full (if half-consumed) pixel pair.
func NewUYVYFrame(width, height int, packed []byte) (*Frame, error) {
	f := &Frame{Format: FormatUYVY, Width: width, Height: height, Packed: packed}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewNV21Frame builds a semi-planar 4:2:0 frame from a full-resolution
// luma plane and a half-resolution V/U interleaved chroma plane.
func NewNV21Frame(width, height int, luma, chroma []byte) (*Frame, error) {
	f := &Frame{Format: FormatNV21, Width: width, Height: height, Luma: luma, Chroma: chroma}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewGray8Frame builds a single-channel luminance frame.
func NewGray8Frame(width, height int, luma []byte) (*Frame, error) {
	f := &Frame{Format: FormatGray8, Width: width, Height: height, Luma: luma}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Params returns the parameter record for this frame's dimensions.
func (f *Frame) Params() Params {
	return Params{Width: uint32(f.Width), Height: uint32(f.Height)}
}

// OutputSize returns the byte size of the RGBA8 output surface.
func (f *Frame) OutputSize() int {
	return f.Width * f.Height * 4
}

// Validate checks the host-side preconditions the kernels rely on: the
// dimensions are sane and every plane covers the extent derived from
// Width and Height. The kernels themselves never re-check these; an
// inconsistent frame must be rejected here, before dispatch.
func (f *Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 || f.Width > maxDimension || f.Height > maxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, f.Width, f.Height)
	}

	w, h := uint32(f.Width), uint32(f.Height)
	switch f.Format {
	case FormatUYVY:
		need := int(packedWidth(w)) * f.Height * 4
		if len(f.Packed) < need {
			return fmt.Errorf("%w: packed plane %d bytes, need %d", ErrPlaneSize, len(f.Packed), need)
		}
	case FormatNV21:
		if len(f.Luma) < f.Width*f.Height {
			return fmt.Errorf("%w: luma plane %d bytes, need %d", ErrPlaneSize, len(f.Luma), f.Width*f.Height)
		}
		need := int(packedWidth(w)) * int(ceilDiv(h, 2)) * 2
		if len(f.Chroma) < need {
			return fmt.Errorf("%w: chroma plane %d bytes, need %d", ErrPlaneSize, len(f.Chroma), need)
		}
	case FormatGray8:
		if len(f.Luma) < f.Width*f.Height {
			return fmt.Errorf("%w: luma plane %d bytes, need %d", ErrPlaneSize, len(f.Luma), f.Width*f.Height)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f.Format)
	}
	return nil
}
