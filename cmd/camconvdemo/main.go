// Command camconvdemo converts a synthetic camera frame to RGBA and
// saves it as PNG.
//
// It generates standard color bars for the chroma formats (UYVY, NV21)
// and a horizontal ramp for Gray8, runs the conversion (GPU when
// available, CPU otherwise), optionally rescales the result, and writes
// the image to disk.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/camconv"

	// Enable GPU conversion. Falls back to CPU when no GPU is available.
	_ "github.com/gogpu/camconv/gpu"
)

func main() {
	var (
		width   = flag.Int("width", 640, "frame width")
		height  = flag.Int("height", 480, "frame height")
		format  = flag.String("format", "uyvy", "source format: uyvy, nv21, gray")
		output  = flag.String("output", "frame.png", "output file")
		scale   = flag.Float64("scale", 1.0, "output scale factor")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		camconv.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	frame, err := makeFrame(*format, *width, *height)
	if err != nil {
		log.Fatalf("Failed to build frame: %v", err)
	}

	rgba, err := camconv.Convert(frame)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	img := &image.RGBA{
		Pix:    rgba,
		Stride: *width * 4,
		Rect:   image.Rect(0, 0, *width, *height),
	}

	out := rescale(img, *scale)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}

	b := out.Bounds()
	log.Printf("Saved %s frame to %s (%dx%d)\n", frame.Format, *output, b.Dx(), b.Dy())
}

// rescale resamples the image with Catmull-Rom interpolation. A scale of
// 1 returns the image unchanged.
func rescale(img *image.RGBA, scale float64) image.Image {
	if scale == 1.0 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// barYUV holds the eight standard 75% color bars as studio-swing
// BT.601 YUV, left to right.
var barYUV = [8][3]byte{
	{235, 128, 128}, // white
	{210, 16, 146},  // yellow
	{170, 166, 16},  // cyan
	{145, 54, 34},   // green
	{106, 202, 222}, // magenta
	{81, 90, 240},   // red
	{41, 240, 110},  // blue
	{16, 128, 128},  // black
}

// barAt returns the bar color for a pixel column.
func barAt(x, width int) (y, u, v byte) {
	bar := x * len(barYUV) / width
	if bar >= len(barYUV) {
		bar = len(barYUV) - 1
	}
	c := barYUV[bar]
	return c[0], c[1], c[2]
}

func makeFrame(format string, width, height int) (*camconv.Frame, error) {
	switch format {
	case "uyvy":
		return makeUYVYBars(width, height)
	case "nv21":
		return makeNV21Bars(width, height)
	case "gray":
		return makeGrayRamp(width, height)
	default:
		log.Fatalf("Unknown format %q (want uyvy, nv21, or gray)", format)
		return nil, nil
	}
}

// makeUYVYBars packs color bars as UYVY texels, two pixels per 4-byte
// group. Both pixels of a texel sample the left pixel's bar.
func makeUYVYBars(width, height int) (*camconv.Frame, error) {
	pw := (width + 1) / 2
	packed := make([]byte, pw*height*4)
	for row := 0; row < height; row++ {
		for t := 0; t < pw; t++ {
			x := t * 2
			y0, u, v := barAt(x, width)
			y1 := y0
			if x+1 < width {
				y1, _, _ = barAt(x+1, width)
			}
			i := (row*pw + t) * 4
			packed[i+0] = u
			packed[i+1] = y0
			packed[i+2] = v
			packed[i+3] = y1
		}
	}
	return camconv.NewUYVYFrame(width, height, packed)
}

// makeNV21Bars builds color bars as a full-resolution luma plane plus a
// half-resolution VU-interleaved chroma plane.
func makeNV21Bars(width, height int) (*camconv.Frame, error) {
	cw := (width + 1) / 2
	ch := (height + 1) / 2
	luma := make([]byte, width*height)
	chroma := make([]byte, cw*ch*2)
	for row := 0; row < height; row++ {
		for x := 0; x < width; x++ {
			y, _, _ := barAt(x, width)
			luma[row*width+x] = y
		}
	}
	for row := 0; row < ch; row++ {
		for cx := 0; cx < cw; cx++ {
			_, u, v := barAt(cx*2, width)
			i := (row*cw + cx) * 2
			chroma[i+0] = v
			chroma[i+1] = u
		}
	}
	return camconv.NewNV21Frame(width, height, luma, chroma)
}

// makeGrayRamp builds a horizontal 0..255 luminance ramp.
func makeGrayRamp(width, height int) (*camconv.Frame, error) {
	luma := make([]byte, width*height)
	div := width - 1
	if div < 1 {
		div = 1
	}
	for row := 0; row < height; row++ {
		for x := 0; x < width; x++ {
			luma[row*width+x] = byte(x * 255 / div)
		}
	}
	return camconv.NewGray8Frame(width, height, luma)
}
