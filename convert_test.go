// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camconv

import (
	"bytes"
	"errors"
	"testing"
)

func TestForEachInvocation(t *testing.T) {
	// Odd dimensions force partial tiles on the right and bottom edges.
	// Every in-range pixel must be visited exactly once and nothing
	// outside the image may reach the kernel.
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"single pixel", 1, 1},
		{"exact tile", 16, 16},
		{"partial tiles", 17, 9},
		{"wide partial", 33, 2},
		{"tall partial", 2, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Width: tt.width, Height: tt.height}
			visits := make(map[[2]uint32]int)
			forEachInvocation(p, func(x, y uint32) {
				if x >= tt.width || y >= tt.height {
					t.Fatalf("out-of-range invocation (%d, %d) for %dx%d", x, y, tt.width, tt.height)
				}
				visits[[2]uint32{x, y}]++
			})
			if len(visits) != int(tt.width*tt.height) {
				t.Fatalf("visited %d pixels, want %d", len(visits), tt.width*tt.height)
			}
			for coord, n := range visits {
				if n != 1 {
					t.Fatalf("pixel (%d, %d) visited %d times", coord[0], coord[1], n)
				}
			}
		})
	}
}

func TestConvertAlphaOpaque(t *testing.T) {
	luma := make([]byte, 17*9)
	for i := range luma {
		luma[i] = byte(i * 7)
	}
	f, err := NewGray8Frame(17, 9, luma)
	if err != nil {
		t.Fatalf("NewGray8Frame() error = %v", err)
	}
	out, err := Convert(f)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(out) != f.OutputSize() {
		t.Fatalf("output %d bytes, want %d", len(out), f.OutputSize())
	}
	for i := 3; i < len(out); i += 4 {
		if out[i] != 0xFF {
			t.Fatalf("alpha at pixel %d = %d, want 255", i/4, out[i])
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	packed := make([]byte, 9*7*4)
	for i := range packed {
		packed[i] = byte(i * 13)
	}
	f, err := NewUYVYFrame(17, 7, packed)
	if err != nil {
		t.Fatalf("NewUYVYFrame() error = %v", err)
	}

	first, err := Convert(f)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	second, err := Convert(f)
	if err != nil {
		t.Fatalf("second Convert() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated conversion of identical input must be bit-identical")
	}
}

func TestConvertIntoLeavesTailUntouched(t *testing.T) {
	// A destination larger than width*height*4 keeps its tail: the
	// boundary guard means no invocation writes outside the image, even
	// though the 17x9 grid rounds up to 2x1 tiles of 16x16.
	f, err := NewGray8Frame(17, 9, make([]byte, 17*9))
	if err != nil {
		t.Fatalf("NewGray8Frame() error = %v", err)
	}
	dst := make([]byte, f.OutputSize()+64)
	for i := range dst {
		dst[i] = 0xEE
	}
	if err := ConvertInto(f, dst); err != nil {
		t.Fatalf("ConvertInto() error = %v", err)
	}
	for i := f.OutputSize(); i < len(dst); i++ {
		if dst[i] != 0xEE {
			t.Fatalf("byte %d past the image was overwritten", i)
		}
	}
}

func TestConvertIntoOutputSize(t *testing.T) {
	f, err := NewGray8Frame(4, 4, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewGray8Frame() error = %v", err)
	}
	if err := ConvertInto(f, make([]byte, 63)); !errors.Is(err, ErrOutputSize) {
		t.Errorf("ConvertInto() with short dst error = %v, want %v", err, ErrOutputSize)
	}
	if err := ConvertInto(f, make([]byte, 64)); err != nil {
		t.Errorf("ConvertInto() with exact dst error = %v", err)
	}
}

func TestConvertInvalidFrame(t *testing.T) {
	f := &Frame{Format: FormatGray8, Width: 4, Height: 4, Luma: make([]byte, 8)}
	if _, err := Convert(f); !errors.Is(err, ErrPlaneSize) {
		t.Errorf("Convert() with invalid frame error = %v, want %v", err, ErrPlaneSize)
	}
}

// fallbackAccel counts Convert calls and always defers to the CPU.
type fallbackAccel struct {
	calls int
}

func (a *fallbackAccel) Name() string { return "test-fallback" }
func (a *fallbackAccel) Init() error  { return nil }
func (a *fallbackAccel) Close()       {}
func (a *fallbackAccel) Convert(f *Frame, dst []byte) error {
	a.calls++
	return ErrFallbackToCPU
}

func TestConvertFallsBackToCPU(t *testing.T) {
	resetAccelerator()
	t.Cleanup(resetAccelerator)

	a := &fallbackAccel{}
	if err := RegisterAccelerator(a); err != nil {
		t.Fatalf("RegisterAccelerator() error = %v", err)
	}

	luma := make([]byte, 4)
	luma[0] = 200
	f, err := NewGray8Frame(2, 2, luma)
	if err != nil {
		t.Fatalf("NewGray8Frame() error = %v", err)
	}
	out, err := Convert(f)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if a.calls != 1 {
		t.Errorf("accelerator called %d times, want 1", a.calls)
	}
	// CPU path still produced the image.
	if out[0] != 200 || out[3] != 255 {
		t.Errorf("pixel 0 = (%d, _, _, %d), want (200, _, _, 255)", out[0], out[3])
	}
}
