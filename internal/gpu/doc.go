// Package gpu executes the camconv conversion kernels on the GPU via
// gogpu/wgpu compute shaders.
//
// Each pixel format has one WGSL kernel (shaders/), dispatched over a
// ceil(width/16) x ceil(height/16) grid of 16x16 workgroups, one
// invocation per output pixel. Input planes and the RGBA8 output live in
// storage buffers of packed 8-bit unorm texels; the parameter record is a
// 16-byte uniform. The CPU reference kernels in the root package mirror
// the shaders invocation for invocation, so both paths produce
// bit-identical output.
package gpu
