// Command preview prints a Mandelbrot view to the terminal in the best
// colors it supports, two pixel rows per line of text.
package main

import (
	"bufio"
	"context"
	"fmt"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelzoom/pkg/colorize"
	"github.com/willbeason/mandelzoom/pkg/field"
	"github.com/willbeason/mandelzoom/pkg/render"
	"io"
	"log"
	"os"
	"time"
)

const (
	upperHalfBlock = "▀"

	customPalette = "custom"
)

type config struct {
	width    int
	height   int
	maxIter  int
	zoom     float64
	palette  string
	gradient string
	workers  int
	verbose  bool
}

func mainCmd() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a Mandelbrot view to the terminal",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.width, "width", 80, "columns")
	flags.IntVar(&cfg.height, "height", 48, "pixel rows, two per line of text")
	flags.IntVar(&cfg.maxIter, "max-iter", 100, "iterations before a point is considered bounded")
	flags.Float64Var(&cfg.zoom, "zoom", 1.0, "magnification about -0.5+0i")
	flags.StringVar(&cfg.palette, "palette", "rainbow", "palette name, see the list command")
	flags.StringVar(&cfg.gradient, "gradient", "", "custom gradient #rrggbb:#rrggbb, overrides --palette")
	flags.IntVar(&cfg.workers, "workers", 0, "render goroutines, 0 for one per CPU")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log render timing")

	cmd.AddCommand(listCmd())

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in palettes",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range colorize.DefaultCatalog().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func (cfg *config) validate() error {
	switch {
	case cfg.width <= 0 || cfg.height <= 0:
		return fmt.Errorf("image size %dx%d must be positive", cfg.width, cfg.height)
	case cfg.maxIter <= 0:
		return fmt.Errorf("max-iter %d must be positive", cfg.maxIter)
	case cfg.zoom <= 0:
		return fmt.Errorf("zoom %v must be positive", cfg.zoom)
	}
	return nil
}

func (cfg *config) strategy() (colorize.Strategy, error) {
	catalog := colorize.DefaultCatalog()
	name := cfg.palette

	if cfg.gradient != "" {
		g, err := colorize.ParseGradient(cfg.gradient)
		if err != nil {
			return nil, fmt.Errorf("--gradient: %w", err)
		}
		catalog, err = catalog.With(colorize.Preset{Name: customPalette, Strategy: colorize.GradientStrategy{Gradient: g}})
		if err != nil {
			return nil, err
		}
		name = customPalette
	}

	s, found := catalog.Lookup(name)
	if !found {
		return nil, fmt.Errorf("unknown palette %q, want one of %v", name, catalog.Names())
	}
	return s, nil
}

func runCmd(cmd *cobra.Command, cfg *config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	s, err := cfg.strategy()
	if err != nil {
		return err
	}

	spec := field.ImageSpec{Width: cfg.width, Height: cfg.height}
	params := field.RenderParams{MaxIter: cfg.maxIter, Zoom: cfg.zoom}

	start := time.Now()
	buf, err := render.RenderContext(cmd.Context(), spec, params, s, cfg.workers)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if cfg.verbose {
		log.Printf("rendered %dx%d at zoom %v in %s", cfg.width, cfg.height, cfg.zoom, time.Since(start))
	}

	return writeANSI(cmd.OutOrStdout(), buf)
}

// writeANSI prints buf with the upper half block: the foreground color is the
// even row and the background color the odd row below it. Colors are reduced
// to what the output's profile supports.
func writeANSI(out io.Writer, buf render.PixelBuffer, opts ...termenv.OutputOption) error {
	w := bufio.NewWriter(out)
	o := termenv.NewOutput(w, opts...)

	for y := 0; y < buf.Height; y += 2 {
		for x := 0; x < buf.Width; x++ {
			cell := o.String(upperHalfBlock).Foreground(o.Color(colorize.FormatColor(buf.At(x, y))))
			if y+1 < buf.Height {
				cell = cell.Background(o.Color(colorize.FormatColor(buf.At(x, y+1))))
			}
			w.WriteString(cell.String())
		}
		w.WriteString("\n")
	}

	return w.Flush()
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
