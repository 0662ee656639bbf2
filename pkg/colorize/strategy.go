package colorize

import (
	"github.com/willbeason/mandelzoom/pkg/field"
	"image/color"
)

// A Strategy chooses the color of a pixel from its escape result.
type Strategy interface {
	Color(r field.EscapeResult, maxIter int) color.RGBA
}

func Colorize(r field.EscapeResult, maxIter int, s Strategy) color.RGBA {
	return s.Color(r, maxIter)
}

// normalized is the escape speed of r in [0, 1). ok is false for bounded
// points and for an empty iteration budget, both of which are drawn black.
func normalized(r field.EscapeResult, maxIter int) (t float64, ok bool) {
	if !r.Escaped || maxIter <= 0 {
		return 0.0, false
	}
	return float64(r.Iterations) / float64(maxIter), true
}

// GradientStrategy colors escaped points along a Gradient by escape speed.
type GradientStrategy struct {
	Gradient
}

func (s GradientStrategy) Color(r field.EscapeResult, maxIter int) color.RGBA {
	t, ok := normalized(r, maxIter)
	if !ok {
		return black
	}
	return s.Lerp(t)
}

// Fire is a fixed polynomial palette running from black through deep blue
// and red to yellow, independent of any Gradient.
type Fire struct{}

func (Fire) Color(r field.EscapeResult, maxIter int) color.RGBA {
	t, ok := normalized(r, maxIter)
	if !ok {
		return black
	}

	u := 1.0 - t
	return color.RGBA{
		R: uint8(9.0 * u * t * t * t * 255),
		G: uint8(15.0 * u * u * t * t * 255),
		B: uint8(8.5 * u * u * u * t * 255),
		A: 255,
	}
}

var (
	_ Strategy = GradientStrategy{}
	_ Strategy = Fire{}
)
