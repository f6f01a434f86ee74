package app

import (
	"fmt"
	"image/png"
	"io"
	"log/slog"

	"github.com/tejashwikalptaru/wavefield/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/surface/raster"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/service"
)

// SnapshotOptions controls a headless render.
type SnapshotOptions struct {
	Width  int
	Height int
	Ticks  int
}

// RenderSnapshot renders opts.Ticks frames off-screen and writes the last one to w as PNG.
func RenderSnapshot(logger *slog.Logger, cfg service.RendererConfig, opts SnapshotOptions, w io.Writer) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return domain.NewValidationError("size", fmt.Sprintf("%dx%d", opts.Width, opts.Height), "must be positive")
	}
	if opts.Ticks < 1 {
		return domain.NewValidationError("ticks", opts.Ticks, "must be at least 1")
	}

	clock := scheduler.NewManual()
	renderer, err := service.NewRendererService(logger, cfg, clock, nil)
	if err != nil {
		return err
	}

	surface := raster.New(opts.Width, opts.Height)
	if err := renderer.Activate(surface); err != nil {
		return fmt.Errorf("failed to activate renderer: %w", err)
	}
	clock.Advance(opts.Ticks)
	renderer.Stop()

	logger.Info("snapshot rendered",
		slog.Int("ticks", opts.Ticks),
		slog.Float64("time", renderer.Time()),
		slog.String("dimensions", renderer.Dimensions().String()))

	if err := png.Encode(w, surface.Image()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
