package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale int
}

// WithScale sets the integer upscaling factor (default 1, no scaling).
func WithScale(s int) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG encodes img as PNG. With a scale above 1 every pixel becomes a
// scale×scale block.
func RenderPNG(img image.Image, opts ...PNGOption) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("render png: nil image")
	}
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale < 1 {
		return nil, fmt.Errorf("render png: scale must be at least 1, got %d", r.scale)
	}

	out := img
	if r.scale > 1 {
		out = Upscale(img, r.scale)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Upscale returns img enlarged by an integer factor using nearest-neighbour
// sampling.
func Upscale(img image.Image, scale int) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
