// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"fmt"
)

// Embedded WGSL shader sources, one per conversion kernel.

//go:embed shaders/uyvy.wgsl
var shaderUYVY string

//go:embed shaders/nv21.wgsl
var shaderNV21 string

//go:embed shaders/gray.wgsl
var shaderGray string

// tileSize is the workgroup edge used by all conversion kernels.
// This matches the @workgroup_size(16, 16, 1) attribute in every WGSL
// shader and camconv.TileSize on the host side.
const tileSize = 16

// Kernel identifies one of the three conversion kernels. The kernels are
// statically selected per frame format; there is no runtime format
// dispatch inside a shader.
type Kernel int

const (
	// KernelUYVY converts packed 4:2:2 input.
	KernelUYVY Kernel = iota

	// KernelNV21 converts semi-planar 4:2:0 input.
	KernelNV21

	// KernelGray8 broadcasts single-channel luminance.
	KernelGray8

	// kernelCount is the total number of kernels.
	kernelCount
)

// String returns the shader name of the kernel.
func (k Kernel) String() string {
	switch k {
	case KernelUYVY:
		return "uyvy"
	case KernelNV21:
		return "nv21"
	case KernelGray8:
		return "gray"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// kernelShaderSources maps each kernel to its embedded WGSL source.
func kernelShaderSources() [kernelCount]string {
	return [kernelCount]string{
		KernelUYVY:  shaderUYVY,
		KernelNV21:  shaderNV21,
		KernelGray8: shaderGray,
	}
}
