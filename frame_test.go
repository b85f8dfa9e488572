package camconv

import (
	"errors"
	"testing"
)

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name    string
		frame   *Frame
		wantErr error
	}{
		{
			name:    "valid uyvy",
			frame:   &Frame{Format: FormatUYVY, Width: 4, Height: 2, Packed: make([]byte, 2*2*4)},
			wantErr: nil,
		},
		{
			name:    "valid uyvy odd width",
			frame:   &Frame{Format: FormatUYVY, Width: 5, Height: 2, Packed: make([]byte, 3*2*4)},
			wantErr: nil,
		},
		{
			name:    "uyvy plane short for odd width",
			frame:   &Frame{Format: FormatUYVY, Width: 5, Height: 2, Packed: make([]byte, 2*2*4)},
			wantErr: ErrPlaneSize,
		},
		{
			name: "valid nv21",
			frame: &Frame{Format: FormatNV21, Width: 4, Height: 4,
				Luma: make([]byte, 16), Chroma: make([]byte, 2*2*2)},
			wantErr: nil,
		},
		{
			name: "valid nv21 odd dimensions",
			frame: &Frame{Format: FormatNV21, Width: 5, Height: 3,
				Luma: make([]byte, 15), Chroma: make([]byte, 3*2*2)},
			wantErr: nil,
		},
		{
			name: "nv21 chroma short for odd height",
			frame: &Frame{Format: FormatNV21, Width: 4, Height: 3,
				Luma: make([]byte, 12), Chroma: make([]byte, 2*1*2)},
			wantErr: ErrPlaneSize,
		},
		{
			name: "nv21 luma short",
			frame: &Frame{Format: FormatNV21, Width: 4, Height: 4,
				Luma: make([]byte, 15), Chroma: make([]byte, 8)},
			wantErr: ErrPlaneSize,
		},
		{
			name:    "valid gray",
			frame:   &Frame{Format: FormatGray8, Width: 3, Height: 3, Luma: make([]byte, 9)},
			wantErr: nil,
		},
		{
			name:    "gray luma short",
			frame:   &Frame{Format: FormatGray8, Width: 3, Height: 3, Luma: make([]byte, 8)},
			wantErr: ErrPlaneSize,
		},
		{
			name:    "zero width",
			frame:   &Frame{Format: FormatGray8, Width: 0, Height: 3, Luma: make([]byte, 9)},
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "negative height",
			frame:   &Frame{Format: FormatGray8, Width: 3, Height: -1, Luma: make([]byte, 9)},
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "width over limit",
			frame:   &Frame{Format: FormatGray8, Width: maxDimension + 1, Height: 1},
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "unknown format",
			frame:   &Frame{Format: PixelFormat(9), Width: 2, Height: 2},
			wantErr: ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrameConstructors(t *testing.T) {
	if _, err := NewUYVYFrame(4, 2, make([]byte, 16)); err == nil {
		t.Error("NewUYVYFrame() with short plane should fail")
	}
	f, err := NewUYVYFrame(4, 2, make([]byte, 2*2*4))
	if err != nil {
		t.Fatalf("NewUYVYFrame() error = %v", err)
	}
	if f.Format != FormatUYVY {
		t.Errorf("Format = %v, want %v", f.Format, FormatUYVY)
	}

	if _, err := NewNV21Frame(4, 2, make([]byte, 8), make([]byte, 2)); err == nil {
		t.Error("NewNV21Frame() with short chroma should fail")
	}
	if _, err := NewNV21Frame(4, 2, make([]byte, 8), make([]byte, 4)); err != nil {
		t.Errorf("NewNV21Frame() error = %v", err)
	}

	if _, err := NewGray8Frame(0, 2, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewGray8Frame(0, 2) error = %v, want %v", err, ErrInvalidDimensions)
	}
}

func TestFrameParams(t *testing.T) {
	f, err := NewGray8Frame(7, 5, make([]byte, 35))
	if err != nil {
		t.Fatalf("NewGray8Frame() error = %v", err)
	}
	p := f.Params()
	if p.Width != 7 || p.Height != 5 {
		t.Errorf("Params() = %dx%d, want 7x5", p.Width, p.Height)
	}
	if p.Reserved0 != 0 || p.Reserved1 != 0 {
		t.Error("reserved params fields must be zero")
	}
	if f.OutputSize() != 7*5*4 {
		t.Errorf("OutputSize() = %d, want %d", f.OutputSize(), 7*5*4)
	}
}

func TestPixelFormat(t *testing.T) {
	tests := []struct {
		format     PixelFormat
		wantString string
		wantPlanes int
	}{
		{FormatUYVY, "UYVY", 1},
		{FormatNV21, "NV21", 2},
		{FormatGray8, "Gray8", 1},
		{PixelFormat(9), "Unknown(9)", 0},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.wantString {
			t.Errorf("String() = %q, want %q", got, tt.wantString)
		}
		if got := tt.format.PlaneCount(); got != tt.wantPlanes {
			t.Errorf("%s PlaneCount() = %d, want %d", tt.wantString, got, tt.wantPlanes)
		}
	}
}
