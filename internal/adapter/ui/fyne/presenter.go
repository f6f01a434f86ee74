// Package fyne provides the Fyne desktop host of the wave field renderer.
package fyne

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/wavefield/internal/config"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"github.com/tejashwikalptaru/wavefield/internal/service"
)

// UIView defines the interface for UI updates.
// MainWindow implements it; tests use a fake.
type UIView interface {
	// Surface returns the drawing surface hosted by the view.
	Surface() ports.Surface

	// Snapshot returns the last presented frame.
	Snapshot() image.Image

	// Status line
	SetStatus(text string)

	// Settings menu state
	SetVariant(variant domain.Variant)
	SetUnitCount(count int)
	SetShowCenterline(show bool)

	// Notifications
	ShowNotification(title, message string)
}

// Presenter coordinates the renderer, the settings and the view (MVP).
//
// Responsibilities:
//   - start the renderer when the section becomes visible and stop it when hidden
//   - restart the renderer when a setting changes
//   - translate menu commands into settings changes
//   - keep the status line current
//
// Thread-safety: safe for concurrent use.
type Presenter struct {
	logger *slog.Logger

	renderer *service.RendererService
	settings *service.SettingsService

	// EventBus is exported so the window can publish visibility events.
	EventBus ports.EventBus

	view UIView

	mu            sync.Mutex
	base          service.RendererConfig
	presetName    string
	subscriptions []domain.SubscriptionID

	statusInterval time.Duration
	stopStatus     chan struct{}
	statusDone     sync.WaitGroup
	shutdownOnce   sync.Once
}

// NewPresenter creates a presenter. base is the configuration the saved
// settings are applied to, typically the defaults overlaid with a preset.
func NewPresenter(
	logger *slog.Logger,
	renderer *service.RendererService,
	settings *service.SettingsService,
	eventBus ports.EventBus,
	view UIView,
	base service.RendererConfig,
) *Presenter {
	p := &Presenter{
		logger:         logger.With(slog.String("component", "presenter")),
		renderer:       renderer,
		settings:       settings,
		EventBus:       eventBus,
		view:           view,
		base:           base,
		statusInterval: time.Second,
		stopStatus:     make(chan struct{}),
	}

	p.subscribeToEvents()
	p.syncInitialState()
	p.startStatusUpdates()

	return p
}

func (p *Presenter) subscribeToEvents() {
	subscriptions := []struct {
		eventType domain.EventType
		handler   domain.EventHandler
	}{
		{domain.EventSectionVisible, p.onSectionVisible},
		{domain.EventSectionHidden, p.onSectionHidden},
		{domain.EventSettingsChanged, p.onSettingsChanged},
		{domain.EventRendererActivated, p.onRendererActivated},
		{domain.EventRendererStopped, p.onRendererStopped},
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, sub := range subscriptions {
		p.subscriptions = append(p.subscriptions, p.EventBus.Subscribe(sub.eventType, sub.handler))
	}
}

// syncInitialState pushes the saved settings into the menus.
func (p *Presenter) syncInitialState() {
	p.view.SetVariant(p.settings.Variant())
	p.view.SetUnitCount(p.settings.UnitCount())
	p.view.SetShowCenterline(p.settings.ShowCenterline())
	p.view.SetStatus("Waiting for layout")
}

// Event handlers

func (p *Presenter) onSectionVisible(domain.Event) {
	p.activate()
}

func (p *Presenter) onSectionHidden(domain.Event) {
	p.renderer.Stop()
}

func (p *Presenter) onSettingsChanged(event domain.Event) {
	e, ok := event.(domain.SettingsChangedEvent)
	if !ok {
		return
	}

	p.logger.Debug("settings changed, restarting renderer", slog.String("key", e.Key))
	p.view.SetVariant(p.settings.Variant())
	p.view.SetUnitCount(p.settings.UnitCount())
	p.view.SetShowCenterline(p.settings.ShowCenterline())
	p.restart()
}

func (p *Presenter) onRendererActivated(event domain.Event) {
	e, ok := event.(domain.RendererActivatedEvent)
	if !ok {
		return
	}
	p.view.SetStatus(fmt.Sprintf("%s, %d waves", variantName(e.Variant), e.Units))
}

func (p *Presenter) onRendererStopped(event domain.Event) {
	e, ok := event.(domain.RendererStoppedEvent)
	if !ok {
		return
	}
	p.view.SetStatus(fmt.Sprintf("Paused after %d frames", e.Frames))
}

// activate applies the current settings and starts the renderer.
// Activation failures are logged only; the page stays usable without waves.
func (p *Presenter) activate() {
	if p.renderer.State() != domain.StateRunning {
		if err := p.renderer.Reconfigure(p.config()); err != nil {
			p.logger.Error("failed to apply settings", slog.Any("error", err))
			p.view.ShowNotification("Settings", err.Error())
			return
		}
	}

	if err := p.renderer.Activate(p.view.Surface()); err != nil {
		if errors.Is(err, domain.ErrAlreadyActive) {
			p.logger.Debug("renderer already active")
			return
		}
		p.logger.Warn("failed to activate renderer", slog.Any("error", err))
	}
}

// restart re-applies settings; a renderer that was not running stays stopped.
func (p *Presenter) restart() {
	if p.renderer.State() != domain.StateRunning {
		return
	}
	p.renderer.Stop()
	p.activate()
}

func (p *Presenter) config() service.RendererConfig {
	p.mu.Lock()
	base := p.base
	p.mu.Unlock()
	return p.settings.Apply(base)
}

// startStatusUpdates reports the frame rate once per statusInterval.
func (p *Presenter) startStatusUpdates() {
	p.statusDone.Add(1)
	go func() {
		defer p.statusDone.Done()

		ticker := time.NewTicker(p.statusInterval)
		defer ticker.Stop()

		last := p.renderer.FrameCount()
		for {
			select {
			case <-ticker.C:
				last = p.updateStatus(last)
			case <-p.stopStatus:
				return
			}
		}
	}()
}

func (p *Presenter) updateStatus(last uint64) uint64 {
	if p.renderer.State() != domain.StateRunning {
		return 0
	}

	frames := p.renderer.FrameCount()
	if frames < last {
		last = 0
	}
	fps := float64(frames-last) / p.statusInterval.Seconds()

	cfg := p.renderer.Config()
	dims := p.renderer.Dimensions()
	if !dims.Valid() {
		p.view.SetStatus("Waiting for layout")
		return frames
	}
	p.view.SetStatus(fmt.Sprintf("%s, %d waves, %s, %.0f fps",
		variantName(cfg.Wave.Variant), cfg.Wave.Count, dims, fps))
	return frames
}

// Commands from the view

// OnVariantSelected handles the variant menu.
func (p *Presenter) OnVariantSelected(variant domain.Variant) {
	if err := p.settings.SetVariant(variant); err != nil {
		p.logger.Error("failed to change variant", slog.Any("error", err))
		p.view.ShowNotification("Settings", err.Error())
	}
}

// OnUnitCountSelected handles the wave count menu.
func (p *Presenter) OnUnitCountSelected(count int) {
	if err := p.settings.SetUnitCount(count); err != nil {
		p.logger.Error("failed to change unit count", slog.Any("error", err))
		p.view.ShowNotification("Settings", err.Error())
	}
}

// OnCenterlineToggled handles the centerline menu item.
func (p *Presenter) OnCenterlineToggled() {
	if err := p.settings.SetShowCenterline(!p.settings.ShowCenterline()); err != nil {
		p.logger.Error("failed to toggle centerline", slog.Any("error", err))
		p.view.ShowNotification("Settings", err.Error())
	}
}

// OnResetSettings restores the default settings.
func (p *Presenter) OnResetSettings() {
	if err := p.settings.Reset(); err != nil {
		p.logger.Error("failed to reset settings", slog.Any("error", err))
		p.view.ShowNotification("Settings", err.Error())
	}
}

// OnPresetOpened loads a preset file as the new base configuration and
// restarts the renderer with it.
func (p *Presenter) OnPresetOpened(path string) error {
	preset, err := config.LoadPreset(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	cfg, err := preset.Apply(p.base)
	if err == nil {
		p.base = cfg
		p.presetName = preset.Name
	}
	p.mu.Unlock()
	if err != nil {
		return err
	}

	p.logger.Info("preset loaded", slog.String("name", preset.Name), slog.String("path", path))
	p.restart()
	return nil
}

// PresetName returns the name of the last loaded preset.
func (p *Presenter) PresetName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.presetName
}

// OnSnapshotRequested returns the last presented frame.
func (p *Presenter) OnSnapshotRequested() image.Image {
	return p.view.Snapshot()
}

// Shutdown stops the renderer, unsubscribes and ends the status goroutine.
// It's safe to call multiple times (idempotent).
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		close(p.stopStatus)
		p.statusDone.Wait()

		p.mu.Lock()
		subs := p.subscriptions
		p.subscriptions = nil
		p.mu.Unlock()
		for _, id := range subs {
			p.EventBus.Unsubscribe(id)
		}

		p.renderer.Stop()
	})
}

func variantName(v domain.Variant) string {
	for _, info := range domain.Variants() {
		if info.Variant == v {
			return info.Name
		}
	}
	return string(v)
}
