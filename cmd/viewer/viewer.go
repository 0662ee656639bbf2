// Command viewer serves an interactive Mandelbrot explorer to a browser.
//
// The page holds a zoom slider and a palette selector; every change is sent
// over a websocket and answered with a freshly rendered RGBA frame.
package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelzoom/pkg/colorize"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 800
	DefaultMaxIter = 100

	DefaultMinZoom = 0.1
	DefaultMaxZoom = 5.0
)

type config struct {
	addr      string
	width     int
	height    int
	maxIter   int
	minZoom   float64
	maxZoom   float64
	workers   int
	hud       bool
	gradients []string
}

func mainCmd() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Serve an interactive Mandelbrot explorer",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.addr, "addr", ":8080", "address to listen on")
	flags.IntVar(&cfg.width, "width", DefaultWidth, "image width in pixels")
	flags.IntVar(&cfg.height, "height", DefaultHeight, "image height in pixels")
	flags.IntVar(&cfg.maxIter, "max-iter", DefaultMaxIter, "iterations before a point is considered bounded")
	flags.Float64Var(&cfg.minZoom, "min-zoom", DefaultMinZoom, "lowest zoom offered by the slider")
	flags.Float64Var(&cfg.maxZoom, "max-zoom", DefaultMaxZoom, "highest zoom offered by the slider")
	flags.IntVar(&cfg.workers, "workers", 0, "render goroutines, 0 for one per CPU")
	flags.BoolVar(&cfg.hud, "hud", false, "draw a zoom gauge onto each frame")
	flags.StringArrayVar(&cfg.gradients, "gradient", nil, "extra palette as NAME=#rrggbb:#rrggbb, may be repeated")

	return cmd
}

func (cfg *config) validate() error {
	switch {
	case cfg.width <= 0 || cfg.height <= 0:
		return fmt.Errorf("image size %dx%d must be positive", cfg.width, cfg.height)
	case cfg.maxIter <= 0:
		return fmt.Errorf("max-iter %d must be positive", cfg.maxIter)
	case cfg.minZoom <= 0 || cfg.maxZoom < cfg.minZoom:
		return fmt.Errorf("zoom range [%v, %v] must be positive and ordered", cfg.minZoom, cfg.maxZoom)
	}
	return nil
}

func (cfg *config) catalog() (*colorize.Catalog, error) {
	presets := make([]colorize.Preset, len(cfg.gradients))
	for i, g := range cfg.gradients {
		p, err := colorize.ParsePreset(g)
		if err != nil {
			return nil, fmt.Errorf("--gradient: %w", err)
		}
		presets[i] = p
	}

	return colorize.DefaultCatalog().With(presets...)
}

func runCmd(cmd *cobra.Command, cfg *config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	catalog, err := cfg.catalog()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           newServer(cfg, catalog).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx := cmd.Context()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://localhost%s (%dx%d, %d iterations, palettes %v)",
		cfg.addr, cfg.width, cfg.height, cfg.maxIter, catalog.Names())

	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		stop()
		os.Exit(1)
	}
}
