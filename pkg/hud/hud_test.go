package hud

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestFraction(t *testing.T) {
	tcs := []struct {
		state State
		want  float64
	}{
		{State{Zoom: 0.1, MinZoom: 0.1, MaxZoom: 5.0}, 0.0},
		{State{Zoom: 5.0, MinZoom: 0.1, MaxZoom: 5.0}, 1.0},
		{State{Zoom: 2.0, MinZoom: 1.0, MaxZoom: 3.0}, 0.5},
		{State{Zoom: 9.0, MinZoom: 1.0, MaxZoom: 3.0}, 1.0},
		{State{Zoom: 0.5, MinZoom: 1.0, MaxZoom: 3.0}, 0.0},
		{State{Zoom: 2.0, MinZoom: 2.0, MaxZoom: 2.0}, 0.0},
	}

	for _, tc := range tcs {
		if got := tc.state.Fraction(); got != tc.want {
			t.Errorf("%+v: Fraction() = %v, want %v", tc.state, got, tc.want)
		}
	}
}

func TestPanel(t *testing.T) {
	if got, want := Panel(image.Rect(0, 0, 800, 600)), image.Rect(592, 552, 792, 592); got != want {
		t.Errorf("Panel = %v, want %v", got, want)
	}
	if got := Panel(image.Rect(0, 0, 100, 100)); !got.Empty() {
		t.Errorf("Panel of small image = %v, want empty", got)
	}
}

func TestOverlay_StaysInPanel(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	img := filled(320, 200, blue)

	Overlay(img, State{Zoom: 2.5, MinZoom: 0.1, MaxZoom: 5.0, Palette: "rainbow"})

	panel := Panel(img.Bounds())
	changed := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 320; x++ {
			got := img.RGBAAt(x, y)
			inside := image.Pt(x, y).In(panel)
			if !inside && got != blue {
				t.Fatalf("pixel (%d, %d) outside panel changed to %v", x, y, got)
			}
			if inside && got != blue {
				changed++
			}
		}
	}

	if changed != panel.Dx()*panel.Dy() {
		t.Errorf("%d of %d panel pixels changed, want all", changed, panel.Dx()*panel.Dy())
	}
}

func TestOverlay_KnobFollowsZoom(t *testing.T) {
	low := filled(320, 200, color.RGBA{A: 255})
	high := filled(320, 200, color.RGBA{A: 255})

	Overlay(low, State{Zoom: 0.1, MinZoom: 0.1, MaxZoom: 5.0, Palette: "fire"})
	Overlay(high, State{Zoom: 5.0, MinZoom: 0.1, MaxZoom: 5.0, Palette: "fire"})

	panel := Panel(low.Bounds())
	y := panel.Min.Y + trackY - knobSize/2 + 1
	leftKnob := image.Pt(panel.Min.X+padding, y)
	rightKnob := image.Pt(panel.Max.X-padding-1, y)

	if got := low.RGBAAt(leftKnob.X, leftKnob.Y); got != knob {
		t.Errorf("low zoom: knob pixel = %v, want %v", got, knob)
	}
	if got := high.RGBAAt(rightKnob.X, rightKnob.Y); got != knob {
		t.Errorf("high zoom: knob pixel = %v, want %v", got, knob)
	}
	if low.RGBAAt(rightKnob.X, rightKnob.Y) == knob {
		t.Error("low zoom: knob drawn at the high end")
	}
}

func TestOverlay_SmallImageUntouched(t *testing.T) {
	img := filled(64, 48, color.RGBA{G: 255, A: 255})
	before := bytes.Clone(img.Pix)

	Overlay(img, State{Zoom: 1, MinZoom: 0.1, MaxZoom: 5, Palette: "green"})

	if !bytes.Equal(before, img.Pix) {
		t.Error("overlay drew on an image too small for the panel")
	}
}
