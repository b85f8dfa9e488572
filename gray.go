// CPU reference for the grayscale kernel. Mirrors shaders/gray.wgsl.

package camconv

// convertGray8 broadcasts a single-channel luminance plane to RGBA8.
// No color transform is applied: the sample is written to R, G, and B
// unchanged, so conversion is an exact identity per channel.
func convertGray8(f *Frame, dst []byte) {
	p := f.Params()
	luma := f.Luma

	forEachInvocation(p, func(x, y uint32) {
		g := norm8(luma[y*p.Width+x])
		storeRGBA(dst, y*p.Width+x, g, g, g)
	})
}
