// Package colorize turns escape results into colors.
package colorize

import (
	"errors"
	"fmt"
	"github.com/lucasb-eyer/go-colorful"
	"image/color"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

var black = color.RGBA{A: 255}

// A Gradient is a linear ramp between two colors. Alpha channels are ignored.
type Gradient struct {
	Start color.RGBA
	End   color.RGBA
}

// Lerp returns the opaque color a fraction t of the way from Start to End.
// Channels are truncated toward zero.
func (g Gradient) Lerp(t float64) color.RGBA {
	return color.RGBA{
		R: lerp(g.Start.R, g.End.R, t),
		G: lerp(g.Start.G, g.End.G, t),
		B: lerp(g.Start.B, g.End.B, t),
		A: 255,
	}
}

func lerp(start, end uint8, t float64) uint8 {
	return uint8(float64(start)*(1.0-t) + float64(end)*t)
}

func (g Gradient) String() string {
	return FormatColor(g.Start) + ":" + FormatColor(g.End)
}

// ParseGradient parses "#rrggbb:#rrggbb", the format returned by Gradient.String.
func ParseGradient(s string) (Gradient, error) {
	start, end, found := strings.Cut(s, ":")
	if !found {
		return Gradient{}, fmt.Errorf("gradient %q: want START:END: %w", s, ErrInvalidColor)
	}

	startColor, err := ParseColor(start)
	if err != nil {
		return Gradient{}, fmt.Errorf("gradient start: %w", err)
	}
	endColor, err := ParseColor(end)
	if err != nil {
		return Gradient{}, fmt.Errorf("gradient end: %w", err)
	}

	return Gradient{Start: startColor, End: endColor}, nil
}

// ParseColor parses an opaque color written as "#rrggbb" or "#rgb".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != len("#rgb") && len(s) != len("#rrggbb") {
		return color.RGBA{}, fmt.Errorf("%q: want #rgb or #rrggbb: %w", s, ErrInvalidColor)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %v: %w", s, err, ErrInvalidColor)
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
