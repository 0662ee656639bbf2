package colorize

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	ErrEmptyName     = errors.New("preset name is empty")
	ErrDuplicateName = errors.New("duplicate preset name")
)

// A Preset is a named Strategy offered to users.
type Preset struct {
	Name     string
	Strategy Strategy
}

// A Catalog is an ordered, immutable set of presets with unique names.
type Catalog struct {
	presets []Preset
}

// NewCatalog returns a Catalog listing presets in the order given.
func NewCatalog(presets ...Preset) (*Catalog, error) {
	c := &Catalog{}
	return c.With(presets...)
}

// With returns a new Catalog with presets appended after the existing ones.
// The receiver is unchanged.
func (c *Catalog) With(presets ...Preset) (*Catalog, error) {
	result := &Catalog{presets: make([]Preset, 0, len(c.presets)+len(presets))}
	result.presets = append(result.presets, c.presets...)

	for _, p := range presets {
		if p.Name == "" {
			return nil, ErrEmptyName
		}
		if _, found := result.Lookup(p.Name); found {
			return nil, fmt.Errorf("%q: %w", p.Name, ErrDuplicateName)
		}
		result.presets = append(result.presets, p)
	}

	return result, nil
}

func (c *Catalog) Lookup(name string) (Strategy, bool) {
	for _, p := range c.presets {
		if p.Name == name {
			return p.Strategy, true
		}
	}
	return nil, false
}

func (c *Catalog) Names() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}
	return names
}

// Default is the first preset, or false for an empty Catalog.
func (c *Catalog) Default() (Preset, bool) {
	if len(c.presets) == 0 {
		return Preset{}, false
	}
	return c.presets[0], true
}

// DefaultCatalog returns the built-in presets: three gradients and Fire.
func DefaultCatalog() *Catalog {
	return &Catalog{presets: []Preset{
		{Name: "rainbow", Strategy: GradientStrategy{Gradient{
			Start: color.RGBA{R: 255, A: 255},
			End:   color.RGBA{B: 255, A: 255},
		}}},
		{Name: "purple", Strategy: GradientStrategy{Gradient{
			Start: color.RGBA{R: 128, B: 128, A: 255},
			End:   color.RGBA{R: 255, B: 255, A: 255},
		}}},
		{Name: "green", Strategy: GradientStrategy{Gradient{
			Start: color.RGBA{G: 128, A: 255},
			End:   color.RGBA{G: 255, A: 255},
		}}},
		{Name: "fire", Strategy: Fire{}},
	}}
}

// ParsePreset parses a custom gradient preset written as "name=#rrggbb:#rrggbb".
func ParsePreset(s string) (Preset, error) {
	name, gradient, found := strings.Cut(s, "=")
	if !found {
		return Preset{}, fmt.Errorf("preset %q: want NAME=START:END", s)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, ErrEmptyName
	}

	g, err := ParseGradient(gradient)
	if err != nil {
		return Preset{}, fmt.Errorf("preset %q: %w", name, err)
	}

	return Preset{Name: name, Strategy: GradientStrategy{g}}, nil
}
