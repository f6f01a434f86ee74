package fyne

import (
	"image"
	"path/filepath"
	"sync"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/surface/mock"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/logger"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"github.com/tejashwikalptaru/wavefield/internal/service"
	"github.com/tejashwikalptaru/wavefield/internal/testutil"
)

type fakeView struct {
	mu            sync.Mutex
	surface       ports.Surface
	status        string
	variant       domain.Variant
	units         int
	centerline    bool
	notifications []string
}

func (v *fakeView) Surface() ports.Surface { return v.surface }

func (v *fakeView) Snapshot() image.Image { return image.NewRGBA(image.Rect(0, 0, 4, 4)) }

func (v *fakeView) SetStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = text
}

func (v *fakeView) SetVariant(variant domain.Variant) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.variant = variant
}

func (v *fakeView) SetUnitCount(count int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.units = count
}

func (v *fakeView) SetShowCenterline(show bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.centerline = show
}

func (v *fakeView) ShowNotification(title, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notifications = append(v.notifications, title+": "+message)
}

func (v *fakeView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

type presenterFixture struct {
	presenter *Presenter
	renderer  *service.RendererService
	settings  *service.SettingsService
	scheduler *scheduler.Manual
	bus       *eventbus.SyncEventBus
	view      *fakeView
}

func newPresenterFixture(t *testing.T, surface ports.Surface) *presenterFixture {
	t.Helper()

	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus()
	sched := scheduler.NewManual()
	repo := memory.NewSettingsRepository(test.NewApp().Preferences())

	renderer, err := service.NewRendererService(log, service.DefaultRendererConfig(), sched, bus)
	require.NoError(t, err)
	settings := service.NewSettingsService(log, repo, bus)

	view := &fakeView{surface: surface}
	p := NewPresenter(log, renderer, settings, bus, view, service.DefaultRendererConfig())

	t.Cleanup(func() {
		p.Shutdown()
		_ = bus.Close()
	})

	return &presenterFixture{
		presenter: p,
		renderer:  renderer,
		settings:  settings,
		scheduler: sched,
		bus:       bus,
		view:      view,
	}
}

func TestPresenter_InitialState(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))

	assert.Equal(t, domain.VariantPeaked, f.view.variant)
	assert.True(t, f.view.centerline)
	assert.Equal(t, domain.StateUninitialized, f.renderer.State())
}

func TestPresenter_VisibilityDrivesRenderer(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))

	f.bus.Publish(domain.NewSectionVisibleEvent())
	require.Equal(t, domain.StateRunning, f.renderer.State())
	assert.Equal(t, "Peaked, 5 waves", f.view.Status())

	f.bus.Publish(domain.NewSectionVisibleEvent())
	assert.Equal(t, 1, f.scheduler.Subscribers(), "repeated visibility does not double-subscribe")

	f.scheduler.Advance(4)
	f.bus.Publish(domain.NewSectionHiddenEvent())

	assert.Equal(t, domain.StateStopped, f.renderer.State())
	assert.Equal(t, "Paused after 4 frames", f.view.Status())
	assert.Zero(t, f.scheduler.Subscribers())
}

func TestPresenter_SettingChangeRestarts(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))
	f.bus.Publish(domain.NewSectionVisibleEvent())
	f.scheduler.Advance(3)

	f.presenter.OnVariantSelected(domain.VariantExponential)

	assert.Equal(t, domain.StateRunning, f.renderer.State())
	assert.Equal(t, domain.VariantExponential, f.renderer.Config().Wave.Variant)
	assert.Zero(t, f.renderer.FrameCount(), "restart begins a fresh activation")
	assert.Equal(t, domain.VariantExponential, f.view.variant)

	f.presenter.OnUnitCountSelected(8)
	assert.Len(t, f.renderer.Units(), 8)
	assert.Equal(t, 8, f.view.units)

	f.presenter.OnCenterlineToggled()
	assert.False(t, f.renderer.Config().ShowCenterline)
	assert.False(t, f.view.centerline)
}

func TestPresenter_SettingChangeWhileHidden(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))

	f.presenter.OnVariantSelected(domain.VariantExponential)
	assert.Equal(t, domain.StateUninitialized, f.renderer.State(), "hidden renderer stays idle")

	f.bus.Publish(domain.NewSectionVisibleEvent())
	assert.Equal(t, domain.VariantExponential, f.renderer.Config().Wave.Variant)
}

func TestPresenter_InvalidUnitCount(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))

	f.presenter.OnUnitCountSelected(99)

	assert.Len(t, f.view.notifications, 1)
	assert.Zero(t, f.settings.UnitCount())
}

func TestPresenter_ResetSettings(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))
	f.presenter.OnVariantSelected(domain.VariantExponential)

	f.presenter.OnResetSettings()

	assert.Equal(t, domain.VariantPeaked, f.settings.Variant())
	assert.Equal(t, domain.VariantPeaked, f.view.variant)
}

func TestPresenter_MissingSurface(t *testing.T) {
	f := newPresenterFixture(t, nil)

	f.bus.Publish(domain.NewSectionVisibleEvent())

	assert.Equal(t, domain.StateUninitialized, f.renderer.State())
	assert.Empty(t, f.view.notifications, "a missing surface is not reported to the user")
	assert.Zero(t, f.scheduler.Subscribers())
}

func TestPresenter_OnPresetOpened(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))
	f.bus.Publish(domain.NewSectionVisibleEvent())

	err := f.presenter.OnPresetOpened(filepath.Join("..", "..", "..", "..", "presets", "drift.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "drift", f.presenter.PresetName())
	assert.Equal(t, domain.StateRunning, f.renderer.State())
	assert.Len(t, f.renderer.Units(), 6)
	assert.Equal(t, 0.01, f.renderer.Config().TimeStep)
	// Saved settings still win over the preset.
	assert.Equal(t, domain.VariantPeaked, f.renderer.Config().Wave.Variant)
}

func TestPresenter_OnPresetOpenedMissing(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))

	err := f.presenter.OnPresetOpened(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
	assert.Empty(t, f.presenter.PresetName())
}

func TestPresenter_Shutdown(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreFyneGoroutines()...)

	f := newPresenterFixture(t, mock.NewSurface(800, 400))
	f.bus.Publish(domain.NewSectionVisibleEvent())

	f.presenter.Shutdown()
	f.presenter.Shutdown()

	assert.Equal(t, domain.StateStopped, f.renderer.State())
	assert.False(t, f.bus.HasSubscribers(domain.EventSectionVisible))

	f.bus.Publish(domain.NewSectionVisibleEvent())
	assert.Equal(t, domain.StateStopped, f.renderer.State(), "no reaction after shutdown")
}

func TestPresenter_UpdateStatus(t *testing.T) {
	f := newPresenterFixture(t, mock.NewSurface(800, 400))
	f.bus.Publish(domain.NewSectionVisibleEvent())
	f.scheduler.Advance(30)

	last := f.presenter.updateStatus(0)

	assert.Equal(t, uint64(30), last)
	assert.Equal(t, "Peaked, 5 waves, 800x400, 30 fps", f.view.Status())
}
