// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camconv

import (
	"bytes"
	"testing"
)

func TestParamsToBytes(t *testing.T) {
	p := Params{Width: 0x01020304, Height: 0x0A0B0C0D}
	got := p.ToBytes()

	if len(got) != ParamsSize {
		t.Fatalf("ToBytes() length = %d, want %d", len(got), ParamsSize)
	}

	// Little-endian u32 fields in declaration order, reserved words zero.
	want := []byte{
		0x04, 0x03, 0x02, 0x01,
		0x0D, 0x0C, 0x0B, 0x0A,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ToBytes() = % x, want % x", got, want)
	}
}

func TestDispatchSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		wantX, wantY  uint32
	}{
		{"1x1", 1, 1, 1, 1},
		{"exact single tile", 16, 16, 1, 1},
		{"one past tile edge", 17, 16, 2, 1},
		{"tall partial", 16, 33, 1, 3},
		{"both partial", 100, 60, 7, 4},
		{"exact multiple", 640, 480, 40, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Width: tt.width, Height: tt.height}
			x, y := p.DispatchSize()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("DispatchSize() = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPackedWidth(t *testing.T) {
	tests := []struct {
		w    uint32
		want uint32
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{640, 320},
		{641, 321},
	}
	for _, tt := range tests {
		if got := packedWidth(tt.w); got != tt.want {
			t.Errorf("packedWidth(%d) = %d, want %d", tt.w, got, tt.want)
		}
	}
}
