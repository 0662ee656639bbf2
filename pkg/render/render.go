// Package render combines escape classification and colorization into a
// pixel buffer ready for display.
package render

import (
	"context"
	"github.com/willbeason/mandelzoom/pkg/colorize"
	"github.com/willbeason/mandelzoom/pkg/field"
	"image"
	"image/color"
)

const BytesPerPixel = 4

// PixelBuffer is a row-major grid of non-premultiplied RGBA pixels.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

func newPixelBuffer(spec field.ImageSpec) PixelBuffer {
	if spec.Pixels() == 0 {
		return PixelBuffer{Pix: []uint8{}}
	}
	return PixelBuffer{
		Width:  spec.Width,
		Height: spec.Height,
		Pix:    make([]uint8, spec.Pixels()*BytesPerPixel),
	}
}

func (b PixelBuffer) stride() int {
	return b.Width * BytesPerPixel
}

func (b PixelBuffer) At(x, y int) color.RGBA {
	i := y*b.stride() + x*BytesPerPixel
	p := b.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Image wraps the buffer as an *image.RGBA sharing the same pixels.
// Every pixel is opaque, so the premultiplied and straight forms agree.
func (b PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.stride(),
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Paint writes the colors of results into dst, four bytes per result.
func Paint(dst []uint8, results []field.EscapeResult, maxIter int, s colorize.Strategy) {
	for i, r := range results {
		c := s.Color(r, maxIter)
		p := dst[i*BytesPerPixel : (i+1)*BytesPerPixel : (i+1)*BytesPerPixel]
		p[0] = c.R
		p[1] = c.G
		p[2] = c.B
		p[3] = c.A
	}
}

// Render classifies and colors every pixel of spec, one row after another.
func Render(spec field.ImageSpec, params field.RenderParams, s colorize.Strategy) PixelBuffer {
	buf := newPixelBuffer(spec)
	for y := 0; y < buf.Height; y++ {
		buf.paintRow(spec, params, s, y)
	}
	return buf
}

// RenderContext is Render split across a pool of workers by row.
// If ctx is done before every row is started the partial buffer is discarded
// and ctx.Err() is returned.
func RenderContext(ctx context.Context, spec field.ImageSpec, params field.RenderParams, s colorize.Strategy, workers int) (PixelBuffer, error) {
	buf := newPixelBuffer(spec)

	err := field.ForEachRow(ctx, buf.Height, workers, func(y int) {
		buf.paintRow(spec, params, s, y)
	})
	if err != nil {
		return PixelBuffer{}, err
	}

	return buf, nil
}

func (b PixelBuffer) paintRow(spec field.ImageSpec, params field.RenderParams, s colorize.Strategy, y int) {
	results := field.ComputeRows(spec, params, y, y+1)
	Paint(b.Pix[y*b.stride():(y+1)*b.stride()], results, params.MaxIter, s)
}
