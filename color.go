package camconv

// BT.601 limited-range constants. Luma occupies [16, 235] out of [0, 255];
// chroma is centered at 128. The coefficients match the WGSL kernels and
// must not drift from them.
const (
	lumaFloor = 16.0 / 255.0
	lumaScale = 255.0 / 219.0

	redV   = 1.402
	greenU = 0.344136
	greenV = 0.714136
	blueU  = 1.772
)

// yuvToRGB converts one BT.601 limited-range YUV sample to RGB. All inputs
// and outputs are normalized to [0, 1]; out-of-range inputs clamp at the
// output rather than fail. Pure function, shared by all CPU kernels and
// mirrored verbatim in each WGSL kernel.
func yuvToRGB(y, u, v float32) (r, g, b float32) {
	ys := (y - lumaFloor) * lumaScale
	us := u - 0.5
	vs := v - 0.5

	r = clamp01(ys + redV*vs)
	g = clamp01(ys - greenU*us - greenV*vs)
	b = clamp01(ys + blueU*us)
	return r, g, b
}

// clamp01 clamps v to [0, 1].
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// norm8 maps a byte to its normalized [0, 1] sample value, exactly as a
// GPU unorm fetch does.
func norm8(b byte) float32 {
	return float32(b) / 255.0
}

// quant8 maps a clamped [0, 1] value back to a byte with
// round-to-nearest, matching WGSL pack4x8unorm.
func quant8(v float32) byte {
	return byte(v*255.0 + 0.5)
}
