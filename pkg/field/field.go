// Package field classifies every pixel of a Mandelbrot view by how quickly
// its sample point escapes.
package field

import (
	"github.com/willbeason/mandelzoom/pkg/transforms"
)

const (
	// ViewWidth and ViewHeight are the extents of the sampled window at zoom 1.
	ViewWidth  = 3.5
	ViewHeight = 2.0

	// CenterReal shifts the window so the main cardioid sits in the middle.
	CenterReal = -0.5

	// EscapeRadius is the modulus past which a point is known to diverge.
	EscapeRadius = 2.0

	escapeRadius2 = EscapeRadius * EscapeRadius
)

type ImageSpec struct {
	Width  int
	Height int
}

func (s ImageSpec) Pixels() int {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return s.Width * s.Height
}

type RenderParams struct {
	MaxIter int
	Zoom    float64
}

// EscapeResult is the classification of a single sample point.
//
// The zero value is a Bounded result with no iterations observed.
type EscapeResult struct {
	// Iterations is the number of completed iterations when |z| first exceeded
	// EscapeRadius. Only meaningful if Escaped.
	Iterations int
	Escaped    bool
}

// Bounded is the result for a point which stayed within EscapeRadius for the
// whole iteration budget.
func Bounded() EscapeResult {
	return EscapeResult{}
}

// Escaped is the result for a point which diverged after n iterations.
func Escaped(n int) EscapeResult {
	return EscapeResult{Iterations: n, Escaped: true}
}

func Window(params RenderParams) (float64, float64) {
	return ViewWidth / params.Zoom, ViewHeight / params.Zoom
}

// Sample maps the pixel (x, y) to its point in the complex plane.
func Sample(spec ImageSpec, params RenderParams, x, y int) complex128 {
	re := (float64(x)/float64(spec.Width)-0.5)*ViewWidth/params.Zoom + CenterReal
	im := (float64(y)/float64(spec.Height) - 0.5) * ViewHeight / params.Zoom
	return complex(re, im)
}

// Escape iterates z = z*z + c from z = 0 until |z| exceeds EscapeRadius or
// maxIter iterations have run.
func Escape(c complex128, maxIter int) EscapeResult {
	return EscapeWith(transforms.Mandelbrot{}, c, maxIter)
}

// EscapeWith is Escape for an arbitrary map e.
func EscapeWith(e transforms.Escaper, c complex128, maxIter int) EscapeResult {
	z := complex(0, 0)
	n := 0
	for n < maxIter && real(z)*real(z)+imag(z)*imag(z) <= escapeRadius2 {
		z = e.Next(z, c)
		n++
	}

	if n < maxIter {
		return Escaped(n)
	}
	return Bounded()
}

// Compute classifies every pixel of spec in row-major order.
func Compute(spec ImageSpec, params RenderParams) []EscapeResult {
	if spec.Pixels() == 0 {
		return []EscapeResult{}
	}
	return ComputeRows(spec, params, 0, spec.Height)
}

// ComputeRows classifies the rows [y0, y1) of spec. The result holds
// (y1-y0)*Width entries in row-major order.
func ComputeRows(spec ImageSpec, params RenderParams, y0, y1 int) []EscapeResult {
	if spec.Pixels() == 0 || y1 <= y0 {
		return []EscapeResult{}
	}

	results := make([]EscapeResult, (y1-y0)*spec.Width)
	for y := y0; y < y1; y++ {
		computeRow(spec, params, y, results[(y-y0)*spec.Width:(y-y0+1)*spec.Width])
	}
	return results
}

func computeRow(spec ImageSpec, params RenderParams, y int, row []EscapeResult) {
	for x := range row {
		row[x] = Escape(Sample(spec, params, x, y), params.MaxIter)
	}
}
