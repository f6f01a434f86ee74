package widgets

import (
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/logger"
	"github.com/tejashwikalptaru/wavefield/internal/service"
	"github.com/tejashwikalptaru/wavefield/internal/testutil"
)

func newRecordingBus(t *testing.T) (*eventbus.SyncEventBus, *[]domain.EventType) {
	t.Helper()
	bus := eventbus.NewSyncEventBus()
	t.Cleanup(func() { _ = bus.Close() })

	var seen []domain.EventType
	bus.SubscribeAll(func(e domain.Event) {
		seen = append(seen, e.Type())
	})
	return bus, &seen
}

func count(events []domain.EventType, want domain.EventType) int {
	n := 0
	for _, e := range events {
		if e == want {
			n++
		}
	}
	return n
}

func TestWaveCanvas_ResizeFollowsLayout(t *testing.T) {
	test.NewApp()
	bus, seen := newRecordingBus(t)
	c := NewWaveCanvas(bus)

	c.Resize(fyne.NewSize(320, 180))

	w, h := c.Surface().Size()
	assert.Equal(t, 320.0, w)
	assert.Equal(t, 180.0, h)
	assert.Equal(t, 1, count(*seen, domain.EventSurfaceResized))

	c.Resize(fyne.NewSize(320, 180))
	assert.Equal(t, 1, count(*seen, domain.EventSurfaceResized), "same size publishes nothing")

	c.Resize(fyne.NewSize(200, 100))
	assert.Equal(t, 2, count(*seen, domain.EventSurfaceResized))
}

func TestWaveCanvas_Visibility(t *testing.T) {
	test.NewApp()
	bus, seen := newRecordingBus(t)
	c := NewWaveCanvas(bus)

	c.Hide()
	c.Show()

	assert.Equal(t, 1, count(*seen, domain.EventSectionHidden))
	assert.Equal(t, 1, count(*seen, domain.EventSectionVisible))
	assert.True(t, c.Visible())
}

func TestWaveCanvas_InWindow(t *testing.T) {
	test.NewApp()
	bus, _ := newRecordingBus(t)
	c := NewWaveCanvas(bus)

	w := test.NewWindow(c)
	defer w.Close()
	w.Resize(fyne.NewSize(400, 300))

	width, height := c.Surface().Size()
	assert.Positive(t, width)
	assert.Positive(t, height)
	require.NotNil(t, c.Snapshot())
	assert.Equal(t, int(width), c.Snapshot().Rect.Dx())
}

func TestWaveCanvas_Close(t *testing.T) {
	test.NewApp()
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()
	c := NewWaveCanvas(bus)
	require.True(t, bus.HasSubscribers(domain.EventFrameRendered))

	c.Close()
	c.Close()

	assert.False(t, bus.HasSubscribers(domain.EventFrameRendered))
}

func TestWaveCanvas_NilBus(t *testing.T) {
	test.NewApp()
	c := NewWaveCanvas(nil)

	assert.NotPanics(t, func() {
		c.Resize(fyne.NewSize(50, 50))
		c.Hide()
		c.Show()
		c.Close()
	})
}

func blank(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

func TestWaveCanvas_SnapshotHoldsLastCompleteFrame(t *testing.T) {
	test.NewApp()
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()
	c := NewWaveCanvas(bus)
	defer c.Close()
	c.Resize(fyne.NewSize(320, 180))

	before := c.Snapshot()
	assert.Equal(t, 320, before.Rect.Dx())
	assert.True(t, blank(before), "nothing rendered yet")

	clock := scheduler.NewManual()
	renderer, err := service.NewRendererService(logger.NewTestLogger(), service.DefaultRendererConfig(), clock, bus)
	require.NoError(t, err)
	require.NoError(t, renderer.Activate(c.Surface()))
	defer renderer.Stop()

	clock.Tick()
	require.False(t, blank(c.Snapshot()))

	// A frame in progress starts by clearing the surface.
	c.Surface().ClearRect(0, 0, 320, 180)
	assert.False(t, blank(c.Snapshot()), "snapshot keeps the finished frame")
	assert.False(t, blank(c.draw(320, 180).(*image.RGBA)))
}

func TestWaveCanvas_NoPartialFramesWithTicker(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreFyneGoroutines()...)

	test.NewApp()
	bus := eventbus.NewSyncEventBus()
	c := NewWaveCanvas(bus)
	c.Resize(fyne.NewSize(400, 200))

	ticker := scheduler.NewTicker(logger.NewTestLogger(), 240)
	renderer, err := service.NewRendererService(logger.NewTestLogger(), service.DefaultRendererConfig(), ticker, bus)
	require.NoError(t, err)
	require.NoError(t, renderer.Activate(c.Surface()))

	require.Eventually(t, func() bool {
		return !blank(c.Snapshot())
	}, 2*time.Second, time.Millisecond, "first frame presented")

	blanks, reads := 0, 0
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		if blank(c.Snapshot()) {
			blanks++
		}
		reads++
	}

	renderer.Stop()
	ticker.Close()
	c.Close()
	_ = bus.Close()

	assert.Positive(t, reads)
	assert.Zero(t, blanks, "every snapshot is a completed frame")
}
