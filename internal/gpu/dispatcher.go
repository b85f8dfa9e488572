// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// dispatcher.go owns the per-kernel compute pipelines and the single-pass
// dispatch sequence: upload planes and params, dispatch one 16x16-tiled
// grid, copy the output storage buffer to a staging buffer, read back.

package gpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/camconv"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout is the maximum time to wait for a conversion dispatch.
const fenceTimeout = 5 * time.Second

// Dispatcher compiles and dispatches the three conversion pipelines. It
// must be initialized with Init() before Convert() can be called, and the
// caller owns the device and queue lifetimes.
type Dispatcher struct {
	mu sync.RWMutex

	// device is the HAL device providing GPU resource creation.
	device hal.Device

	// queue is the HAL queue for command submission and buffer writes.
	queue hal.Queue

	// pipelines are the compiled compute pipelines, one per kernel.
	pipelines [kernelCount]hal.ComputePipeline

	// pipelineLayouts are the pipeline layouts, one per kernel.
	pipelineLayouts [kernelCount]hal.PipelineLayout

	// bgLayouts are the bind group layouts, one per kernel.
	bgLayouts [kernelCount]hal.BindGroupLayout

	// shaderModules are the compiled shader modules, one per kernel.
	shaderModules [kernelCount]hal.ShaderModule

	// shaderSources are the embedded WGSL sources, indexed by kernel.
	shaderSources [kernelCount]string

	// initialized indicates whether pipelines have been created.
	initialized bool
}

// NewDispatcher creates a dispatcher attached to the given HAL device and
// queue.
func NewDispatcher(device hal.Device, queue hal.Queue) *Dispatcher {
	return &Dispatcher{
		device:        device,
		queue:         queue,
		shaderSources: kernelShaderSources(),
	}
}

// kernelBindGroupLayoutEntries returns the bind group layout entries for
// a kernel. These match the @group(0) @binding(N) annotations in the
// corresponding WGSL shader exactly: input surface(s) first, then the
// output surface, then the parameter record.
func kernelBindGroupLayoutEntries(k Kernel) []gputypes.BindGroupLayoutEntry {
	storageRO := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		}
	}
	storageRW := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
		}
	}
	uniform := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}
	}

	switch k {
	case KernelUYVY:
		// @binding(0) storage(read) packed input
		// @binding(1) storage(read_write) output
		// @binding(2) uniform params
		return []gputypes.BindGroupLayoutEntry{storageRO(0), storageRW(1), uniform(2)}

	case KernelNV21:
		// @binding(0) storage(read) luma
		// @binding(1) storage(read) chroma
		// @binding(2) storage(read_write) output
		// @binding(3) uniform params
		return []gputypes.BindGroupLayoutEntry{storageRO(0), storageRO(1), storageRW(2), uniform(3)}

	case KernelGray8:
		// @binding(0) storage(read) luma
		// @binding(1) storage(read_write) output
		// @binding(2) uniform params
		return []gputypes.BindGroupLayoutEntry{storageRO(0), storageRW(1), uniform(2)}

	default:
		return nil
	}
}

// Init compiles all three WGSL kernels and creates their compute
// pipelines. Safe to call multiple times; subsequent calls are no-ops.
func (d *Dispatcher) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}

	for k := Kernel(0); k < kernelCount; k++ {
		src := d.shaderSources[k]
		if src == "" {
			return fmt.Errorf("camconv gpu: missing shader source for kernel %s", k)
		}

		name := "camconv_" + k.String()

		module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  name,
			Source: hal.ShaderSource{WGSL: src},
		})
		if err != nil {
			d.destroyPartialInit(k)
			return fmt.Errorf("camconv gpu: create shader module for %s: %w", k, err)
		}
		d.shaderModules[k] = module

		entries := kernelBindGroupLayoutEntries(k)
		bgLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   name + "_bgl",
			Entries: entries,
		})
		if err != nil {
			d.destroyPartialInit(k + 1)
			return fmt.Errorf("camconv gpu: create bind group layout for %s: %w", k, err)
		}
		d.bgLayouts[k] = bgLayout

		pipelineLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
			Label:            name + "_pl",
			BindGroupLayouts: []hal.BindGroupLayout{bgLayout},
		})
		if err != nil {
			d.destroyPartialInit(k + 1)
			return fmt.Errorf("camconv gpu: create pipeline layout for %s: %w", k, err)
		}
		d.pipelineLayouts[k] = pipelineLayout

		pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
			Label:  name,
			Layout: pipelineLayout,
			Compute: hal.ComputeState{
				Module:     module,
				EntryPoint: "main",
			},
		})
		if err != nil {
			d.destroyPartialInit(k + 1)
			return fmt.Errorf("camconv gpu: create compute pipeline for %s: %w", k, err)
		}
		d.pipelines[k] = pipeline

		slogger().Debug("camconv gpu: pipeline created",
			"kernel", k.String(),
			"bindings", len(entries),
			"shader_bytes", len(src))
	}

	d.initialized = true
	return nil
}

// destroyPartialInit cleans up resources for kernels [0, upTo) during a
// failed Init() so partial initialization never leaks.
func (d *Dispatcher) destroyPartialInit(upTo Kernel) {
	for j := Kernel(0); j < upTo; j++ {
		if d.pipelines[j] != nil {
			d.device.DestroyComputePipeline(d.pipelines[j])
			d.pipelines[j] = nil
		}
		if d.pipelineLayouts[j] != nil {
			d.device.DestroyPipelineLayout(d.pipelineLayouts[j])
			d.pipelineLayouts[j] = nil
		}
		if d.bgLayouts[j] != nil {
			d.device.DestroyBindGroupLayout(d.bgLayouts[j])
			d.bgLayouts[j] = nil
		}
		if d.shaderModules[j] != nil {
			d.device.DestroyShaderModule(d.shaderModules[j])
			d.shaderModules[j] = nil
		}
	}
}

// Close releases all GPU resources held by the dispatcher. After Close,
// the dispatcher must be re-initialized with Init() before use.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.destroyPartialInit(kernelCount)
	d.initialized = false
}

// KernelFor returns the kernel for a frame's pixel format.
func KernelFor(format camconv.PixelFormat) (Kernel, bool) {
	switch format {
	case camconv.FormatUYVY:
		return KernelUYVY, true
	case camconv.FormatNV21:
		return KernelNV21, true
	case camconv.FormatGray8:
		return KernelGray8, true
	default:
		return 0, false
	}
}

// framePlanes returns the input planes for a validated frame, sliced to
// the exact extent derived from its dimensions. Order matches the shader
// binding order.
func framePlanes(f *camconv.Frame) [][]byte {
	w, h := uint32(f.Width), uint32(f.Height)
	pw := (w + 1) / 2
	switch f.Format {
	case camconv.FormatUYVY:
		return [][]byte{f.Packed[:pw*h*4]}
	case camconv.FormatNV21:
		ch := (h + 1) / 2
		return [][]byte{f.Luma[:w*h], f.Chroma[:pw*ch*2]}
	case camconv.FormatGray8:
		return [][]byte{f.Luma[:w*h]}
	default:
		return nil
	}
}

// padToWord zero-pads b up to the next u32 word boundary. Storage buffers
// are arrays of u32 on the shader side, and buffer writes must be
// 4-byte sized; the padding bytes are never addressed by any in-bounds
// invocation.
func padToWord(b []byte) []byte {
	if len(b)%4 == 0 {
		return b
	}
	padded := make([]byte, (len(b)+3)&^3)
	copy(padded, b)
	return padded
}

// frameBuffers tracks per-dispatch GPU buffers and their sizes for
// binding and cleanup.
type frameBuffers struct {
	device     hal.Device
	inputs     []hal.Buffer
	inputSizes []uint64
	output     hal.Buffer
	outputSize uint64
	params     hal.Buffer
	staging    hal.Buffer
}

// destroy releases all per-dispatch buffers.
func (b *frameBuffers) destroy() {
	for _, in := range b.inputs {
		if in != nil {
			b.device.DestroyBuffer(in)
		}
	}
	if b.output != nil {
		b.device.DestroyBuffer(b.output)
	}
	if b.params != nil {
		b.device.DestroyBuffer(b.params)
	}
	if b.staging != nil {
		b.device.DestroyBuffer(b.staging)
	}
}

// allocateBuffers creates and uploads the per-dispatch buffers: one
// read-only storage buffer per input plane, the output storage buffer,
// the params uniform, and a MapRead staging buffer for readback.
func (d *Dispatcher) allocateBuffers(k Kernel, planes [][]byte, outSize uint64) (*frameBuffers, error) {
	bufs := &frameBuffers{device: d.device}

	for i, plane := range planes {
		data := padToWord(plane)
		in, err := d.device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("camconv_%s_in%d", k, i),
			Size:  uint64(len(data)),
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			bufs.destroy()
			return nil, fmt.Errorf("camconv gpu: create input buffer %d: %w", i, err)
		}
		bufs.inputs = append(bufs.inputs, in)
		bufs.inputSizes = append(bufs.inputSizes, uint64(len(data)))
		d.queue.WriteBuffer(in, 0, data)
	}

	output, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("camconv_%s_out", k),
		Size:  outSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		bufs.destroy()
		return nil, fmt.Errorf("camconv gpu: create output buffer: %w", err)
	}
	bufs.output = output
	bufs.outputSize = outSize

	params, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("camconv_%s_params", k),
		Size:  camconv.ParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		bufs.destroy()
		return nil, fmt.Errorf("camconv gpu: create params buffer: %w", err)
	}
	bufs.params = params

	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("camconv_%s_staging", k),
		Size:  outSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		bufs.destroy()
		return nil, fmt.Errorf("camconv gpu: create staging buffer: %w", err)
	}
	bufs.staging = staging

	return bufs, nil
}

// bindGroupEntries maps the kernel's binding slots to buffers: inputs in
// plane order, then output, then params, matching
// kernelBindGroupLayoutEntries.
func bindGroupEntries(bufs *frameBuffers) []gputypes.BindGroupEntry {
	entry := func(binding uint32, buf hal.Buffer, size uint64) gputypes.BindGroupEntry {
		return gputypes.BindGroupEntry{
			Binding: binding,
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: 0,
				Size:   size,
			},
		}
	}

	entries := make([]gputypes.BindGroupEntry, 0, len(bufs.inputs)+2)
	b := uint32(0)
	for i, in := range bufs.inputs {
		entries = append(entries, entry(b, in, bufs.inputSizes[i]))
		b++
	}
	entries = append(entries, entry(b, bufs.output, bufs.outputSize))
	entries = append(entries, entry(b+1, bufs.params, camconv.ParamsSize))
	return entries
}

// Convert dispatches the kernel for the frame's format and writes the
// RGBA8 result into dst. The frame must already be validated and dst must
// hold at least width*height*4 bytes. One dispatch is an atomic unit:
// a single command buffer, a single fence wait, and either the whole
// image lands in dst or an error is returned with dst untouched beyond
// the staging copy.
func (d *Dispatcher) Convert(f *camconv.Frame, dst []byte) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.initialized {
		return fmt.Errorf("camconv gpu: dispatcher not initialized, call Init() first")
	}

	k, ok := KernelFor(f.Format)
	if !ok {
		return fmt.Errorf("camconv gpu: no kernel for format %s", f.Format)
	}

	params := f.Params()
	outSize := uint64(f.OutputSize())

	bufs, err := d.allocateBuffers(k, framePlanes(f), outSize)
	if err != nil {
		return err
	}
	defer bufs.destroy()

	d.queue.WriteBuffer(bufs.params, 0, params.ToBytes())

	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "camconv_" + k.String() + "_bg",
		Layout:  d.bgLayouts[k],
		Entries: bindGroupEntries(bufs),
	})
	if err != nil {
		return fmt.Errorf("camconv gpu: create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bg)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "camconv_convert",
	})
	if err != nil {
		return fmt.Errorf("camconv gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("camconv_convert"); err != nil {
		return fmt.Errorf("camconv gpu: begin encoding: %w", err)
	}

	tilesX, tilesY := params.DispatchSize()

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{
		Label: "camconv_" + k.String(),
	})
	pass.SetPipeline(d.pipelines[k])
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(tilesX, tilesY, 1)
	pass.End()

	encoder.CopyBufferToBuffer(bufs.output, bufs.staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: outSize},
	})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("camconv gpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("camconv gpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("camconv gpu: submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return fmt.Errorf("camconv gpu: wait for GPU: %w", err)
	}
	if !fenceOK {
		return fmt.Errorf("camconv gpu: GPU timeout after %v", fenceTimeout)
	}

	if err := d.queue.ReadBuffer(bufs.staging, 0, dst[:outSize]); err != nil {
		return fmt.Errorf("camconv gpu: readback: %w", err)
	}

	slogger().Debug("camconv gpu: frame converted",
		"kernel", k.String(),
		"size", fmt.Sprintf("%dx%d", f.Width, f.Height),
		"workgroups", tilesX*tilesY)
	return nil
}
