// Package ebiten hosts the wave field renderer in an Ebitengine window.
//
// The game loop drives frames: every Update advances a manual scheduler
// by one tick, Layout forwards window resizes, and Draw blits the raster
// surface onto the screen.
package ebiten

import (
	"errors"
	"image/color"
	"log/slog"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/surface/raster"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"github.com/tejashwikalptaru/wavefield/internal/service"
)

// Background is painted behind the transparent parts of each frame.
var Background = color.RGBA{R: 0x0b, G: 0x14, B: 0x1f, A: 0xff}

// Host implements ebiten.Game around a RendererService.
// Space pauses and resumes, Escape or Q quits.
type Host struct {
	logger   *slog.Logger
	renderer *service.RendererService
	clock    *scheduler.Manual
	bus      ports.EventBus
	surface  *raster.Surface

	frame   *ebiten.Image
	closing atomic.Bool
}

// NewHost creates a host. The renderer must have been built on clock and bus.
func NewHost(logger *slog.Logger, renderer *service.RendererService, clock *scheduler.Manual, bus ports.EventBus) *Host {
	return &Host{
		logger:   logger.With(slog.String("component", "ebiten-host")),
		renderer: renderer,
		clock:    clock,
		bus:      bus,
		surface:  raster.New(0, 0),
	}
}

// Surface returns the drawing surface.
func (h *Host) Surface() *raster.Surface {
	return h.surface
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		h.Close()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.togglePause()
	}
	return h.step()
}

// step advances one frame, or ends the game once Close was called.
func (h *Host) step() error {
	if h.closing.Load() {
		return ebiten.Termination
	}
	h.clock.Tick()
	return nil
}

func (h *Host) togglePause() {
	if h.renderer.State() == domain.StateRunning {
		h.renderer.Stop()
		return
	}
	if err := h.renderer.Activate(h.surface); err != nil {
		h.logger.Error("failed to resume renderer", slog.Any("error", err))
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(Background)

	img := h.surface.Image()
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}

	if h.frame == nil || h.frame.Bounds().Size() != size {
		if h.frame != nil {
			h.frame.Deallocate()
		}
		h.frame = ebiten.NewImage(size.X, size.Y)
	}
	h.frame.WritePixels(img.Pix)
	screen.DrawImage(h.frame, nil)
}

// Layout implements ebiten.Game. The surface follows the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	if h.surface.Resize(outsideWidth, outsideHeight) {
		h.bus.Publish(domain.NewSurfaceResizedEvent())
	}
	return outsideWidth, outsideHeight
}

// Close makes the next Update end the game.
func (h *Host) Close() {
	h.closing.Store(true)
}

// Run opens the window and blocks until it is closed.
func (h *Host) Run(title string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := h.renderer.Activate(h.surface); err != nil {
		return err
	}
	defer h.renderer.Stop()

	h.logger.Info("ebiten host started", slog.Int("tps", ebiten.TPS()))
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
