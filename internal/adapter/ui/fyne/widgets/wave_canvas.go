// Package widgets provides custom Fyne widgets for the wave field renderer.
package widgets

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/surface/raster"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
)

// Background is the page color behind the waves.
var Background = color.NRGBA{R: 0x0b, G: 0x14, B: 0x1f, A: 0xff}

// WaveCanvas hosts the renderer's drawing surface.
//
// The surface follows the widget's layout size. Size changes publish
// SurfaceResized, Show and Hide publish SectionVisible and SectionHidden, and
// every FrameRendered event copies the finished frame and refreshes the
// raster on the Fyne goroutine. The window and snapshots only ever see a
// completed frame, never the surface while a frame is being drawn.
type WaveCanvas struct {
	widget.BaseWidget

	surface    *raster.Surface
	image      *canvas.Raster
	background *canvas.Rectangle

	bus      ports.EventBus
	mu       sync.Mutex
	frame    *image.RGBA
	frameSub domain.SubscriptionID
}

// NewWaveCanvas creates a canvas. The bus may be nil for a static preview.
func NewWaveCanvas(bus ports.EventBus) *WaveCanvas {
	c := &WaveCanvas{
		surface:    raster.New(0, 0),
		background: canvas.NewRectangle(Background),
		bus:        bus,
	}

	c.image = canvas.NewRaster(c.draw)
	c.image.ScaleMode = canvas.ImageScaleSmooth
	c.ExtendBaseWidget(c)

	if bus != nil {
		c.frameSub = bus.Subscribe(domain.EventFrameRendered, c.onFrameRendered)
	}

	return c
}

// CreateRenderer implements fyne.Widget.
func (c *WaveCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(c.background, c.image))
}

// MinSize returns a small size so the canvas expands to fill available space.
func (c *WaveCanvas) MinSize() fyne.Size {
	return fyne.NewSize(160, 90)
}

// Resize resizes the widget and its drawing surface.
func (c *WaveCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)

	if c.surface.Resize(int(size.Width), int(size.Height)) {
		c.publish(domain.NewSurfaceResizedEvent())
	}
}

// Show shows the canvas and reports the section as visible.
func (c *WaveCanvas) Show() {
	c.BaseWidget.Show()
	c.publish(domain.NewSectionVisibleEvent())
}

// Hide hides the canvas and reports the section as hidden.
func (c *WaveCanvas) Hide() {
	c.BaseWidget.Hide()
	c.publish(domain.NewSectionHiddenEvent())
}

// Surface returns the drawing surface.
func (c *WaveCanvas) Surface() ports.Surface {
	return c.surface
}

// Snapshot returns the last completed frame without the background.
// Before the first frame it is a transparent image of the surface size.
func (c *WaveCanvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	frame := c.frame
	c.mu.Unlock()

	if frame == nil {
		w, h := c.surface.Size()
		return image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	}
	out := image.NewRGBA(frame.Rect)
	copy(out.Pix, frame.Pix)
	return out
}

// Close stops listening for frames.
func (c *WaveCanvas) Close() {
	c.mu.Lock()
	id := c.frameSub
	c.frameSub = ""
	c.mu.Unlock()

	if id != "" && c.bus != nil {
		c.bus.Unsubscribe(id)
	}
}

// draw is the raster generator. The surface is drawn in layout units and
// the raster scales it to the output pixel size.
func (c *WaveCanvas) draw(_, _ int) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frame == nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return c.frame
}

// onFrameRendered runs on the render goroutine right after a frame is
// complete and before the next one starts.
func (c *WaveCanvas) onFrameRendered(domain.Event) {
	frame := c.surface.Image()

	c.mu.Lock()
	c.frame = frame
	c.mu.Unlock()

	fyne.Do(c.image.Refresh)
}

func (c *WaveCanvas) publish(event domain.Event) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
