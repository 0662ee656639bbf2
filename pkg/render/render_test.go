package render

import (
	"bytes"
	"context"
	"errors"
	"github.com/willbeason/mandelzoom/pkg/colorize"
	"github.com/willbeason/mandelzoom/pkg/field"
	"image/color"
	"testing"
)

var rainbow = colorize.GradientStrategy{Gradient: colorize.Gradient{
	Start: color.RGBA{R: 255, A: 255},
	End:   color.RGBA{B: 255, A: 255},
}}

func TestRender_SmallRainbow(t *testing.T) {
	spec := field.ImageSpec{Width: 4, Height: 4}
	params := field.RenderParams{MaxIter: 10, Zoom: 1.0}

	buf := Render(spec, params, rainbow)

	if len(buf.Pix) != 64 {
		t.Fatalf("got %d bytes, want 64", len(buf.Pix))
	}
	for i := 3; i < len(buf.Pix); i += BytesPerPixel {
		if buf.Pix[i] != 255 {
			t.Errorf("alpha at byte %d = %d, want 255", i, buf.Pix[i])
		}
	}

	// (2, 2) samples -0.5+0i.
	if got := buf.At(2, 2); got != (color.RGBA{A: 255}) {
		t.Errorf("center pixel = %v, want opaque black", got)
	}
	// (0, 0) samples -2.25-1i which escapes after one iteration: t = 0.1.
	if got, want := buf.At(0, 0), (color.RGBA{R: 229, B: 25, A: 255}); got != want {
		t.Errorf("corner pixel = %v, want %v", got, want)
	}
}

func TestRender_Empty(t *testing.T) {
	for _, spec := range []field.ImageSpec{{Width: 0, Height: 3}, {Width: 3, Height: 0}} {
		buf := Render(spec, field.RenderParams{MaxIter: 10, Zoom: 1}, rainbow)
		if len(buf.Pix) != 0 {
			t.Errorf("Render(%+v) returned %d bytes, want none", spec, len(buf.Pix))
		}
	}
}

func TestRender_ZeroBudget(t *testing.T) {
	buf := Render(field.ImageSpec{Width: 5, Height: 3}, field.RenderParams{MaxIter: 0, Zoom: 1}, rainbow)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if got := buf.At(x, y); got != (color.RGBA{A: 255}) {
				t.Fatalf("pixel (%d, %d) = %v, want opaque black", x, y, got)
			}
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	spec := field.ImageSpec{Width: 40, Height: 30}
	params := field.RenderParams{MaxIter: 80, Zoom: 1.7}

	for _, s := range []colorize.Strategy{rainbow, colorize.Fire{}} {
		a := Render(spec, params, s)
		b := Render(spec, params, s)
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Errorf("%T: renders differ", s)
		}
		if &a.Pix[0] == &b.Pix[0] {
			t.Errorf("%T: renders share a buffer", s)
		}
	}
}

func TestRender_MatchesPaintedField(t *testing.T) {
	spec := field.ImageSpec{Width: 23, Height: 11}
	params := field.RenderParams{MaxIter: 40, Zoom: 0.8}

	want := make([]uint8, spec.Pixels()*BytesPerPixel)
	Paint(want, field.Compute(spec, params), params.MaxIter, colorize.Fire{})

	got := Render(spec, params, colorize.Fire{})
	if !bytes.Equal(got.Pix, want) {
		t.Error("fused render differs from Compute followed by Paint")
	}
}

func TestRenderContext_MatchesRender(t *testing.T) {
	tcs := []struct {
		spec   field.ImageSpec
		params field.RenderParams
	}{
		{field.ImageSpec{Width: 4, Height: 4}, field.RenderParams{MaxIter: 10, Zoom: 1}},
		{field.ImageSpec{Width: 80, Height: 45}, field.RenderParams{MaxIter: 100, Zoom: 0.1}},
		{field.ImageSpec{Width: 33, Height: 64}, field.RenderParams{MaxIter: 150, Zoom: 5}},
	}

	for _, tc := range tcs {
		want := Render(tc.spec, tc.params, rainbow)
		for _, workers := range []int{0, 1, 2, 7, 64} {
			got, err := RenderContext(context.Background(), tc.spec, tc.params, rainbow, workers)
			if err != nil {
				t.Fatal(err)
			}
			if got.Width != want.Width || got.Height != want.Height {
				t.Errorf("%+v workers=%d: got %dx%d, want %dx%d", tc.spec, workers, got.Width, got.Height, want.Width, want.Height)
			}
			if !bytes.Equal(got.Pix, want.Pix) {
				t.Errorf("%+v workers=%d: parallel render differs from serial", tc.spec, workers)
			}
		}
	}
}

func TestRenderContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf, err := RenderContext(ctx, field.ImageSpec{Width: 8, Height: 8}, field.RenderParams{MaxIter: 10, Zoom: 1}, rainbow, 4)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want %v", err, context.Canceled)
	}
	if buf.Pix != nil {
		t.Error("canceled render returned pixels")
	}
}

func TestPixelBuffer_Image(t *testing.T) {
	buf := Render(field.ImageSpec{Width: 9, Height: 6}, field.RenderParams{MaxIter: 20, Zoom: 1}, colorize.Fire{})
	img := buf.Image()

	if got := img.Bounds().Dx(); got != 9 {
		t.Errorf("width = %d, want 9", got)
	}
	if got := img.Bounds().Dy(); got != 6 {
		t.Errorf("height = %d, want 6", got)
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if got, want := img.RGBAAt(x, y), buf.At(x, y); got != want {
				t.Errorf("(%d, %d): image %v, buffer %v", x, y, got, want)
			}
		}
	}
}
