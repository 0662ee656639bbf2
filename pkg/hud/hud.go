// Package hud draws a small zoom gauge over a rendered frame.
//
// The overlay is applied by display code only; rendered buffers never contain it.
package hud

import (
	"fmt"
	"github.com/golang/freetype/raster"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
	"image/draw"
)

const (
	panelWidth  = 200
	panelHeight = 40
	margin      = 8
	padding     = 8

	baseline  = 16
	trackY    = 29
	trackLine = 2
	knobSize  = 8
)

var (
	background = color.RGBA{A: 160}
	track      = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	knob       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

type State struct {
	Zoom    float64
	MinZoom float64
	MaxZoom float64
	Palette string
}

// Fraction is how far Zoom sits along [MinZoom, MaxZoom], clamped to [0, 1].
func (s State) Fraction() float64 {
	if s.MaxZoom <= s.MinZoom {
		return 0.0
	}
	f := (s.Zoom - s.MinZoom) / (s.MaxZoom - s.MinZoom)
	return min(max(f, 0.0), 1.0)
}

func (s State) caption() string {
	return fmt.Sprintf("zoom %.2f  %s", s.Zoom, s.Palette)
}

// Panel is the area Overlay draws into for an image with the given bounds.
// It is empty if the image is too small to hold the panel.
func Panel(bounds image.Rectangle) image.Rectangle {
	p := image.Rect(
		bounds.Max.X-margin-panelWidth, bounds.Max.Y-margin-panelHeight,
		bounds.Max.X-margin, bounds.Max.Y-margin,
	)
	if !p.In(bounds) {
		return image.Rectangle{}
	}
	return p
}

// Overlay draws the gauge for s in the bottom-right corner of img.
// Pixels outside Panel(img.Bounds()) are left untouched.
func Overlay(img *image.RGBA, s State) {
	panel := Panel(img.Bounds())
	if panel.Empty() {
		return
	}

	dst := img.SubImage(panel).(*image.RGBA)
	draw.Draw(dst, panel, image.NewUniform(background), image.Point{}, draw.Over)

	painter := raster.NewRGBAPainter(dst)
	rast := raster.NewRasterizer(panel.Max.X, panel.Max.Y)
	rast.UseNonZeroWinding = true

	left := panel.Min.X + padding
	right := panel.Max.X - padding
	y := panel.Min.Y + trackY

	var line raster.Path
	line.Start(fixed.P(left, y))
	line.Add1(fixed.P(right, y))
	rast.AddStroke(line, fixed.I(trackLine), raster.SquareCapper, raster.BevelJoiner)
	painter.SetColor(track)
	rast.Rasterize(painter)
	rast.Clear()

	x := left + int(s.Fraction()*float64(right-left))
	rast.AddPath(square(x, y, knobSize))
	painter.SetColor(knob)
	rast.Rasterize(painter)
	rast.Clear()

	caption := s.caption()
	face := basicfont.Face7x13
	if maxChars := (panelWidth - 2*padding) / face.Advance; len(caption) > maxChars {
		caption = caption[:maxChars]
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(knob),
		Face: face,
		Dot:  fixed.P(left, panel.Min.Y+baseline),
	}
	d.DrawString(caption)
}

func square(x, y, size int) raster.Path {
	h := size / 2

	var path raster.Path
	path.Start(fixed.P(x-h, y-h))
	path.Add1(fixed.P(x+h, y-h))
	path.Add1(fixed.P(x+h, y+h))
	path.Add1(fixed.P(x-h, y+h))
	path.Add1(fixed.P(x-h, y-h))
	return path
}
