// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/scheduler"
	fyneui "github.com/tejashwikalptaru/wavefield/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/wavefield/internal/config"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/logger"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"github.com/tejashwikalptaru/wavefield/internal/service"
)

// Scheduler kinds accepted by Config.Scheduler.
const (
	SchedulerDisplay = "display"
	SchedulerTicker  = "ticker"
)

// frameLogInterval is how often rendered frames are logged at debug level.
const frameLogInterval = 600

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus  *eventbus.SyncEventBus
	scheduler ports.FrameScheduler
	ticker    *scheduler.Ticker

	// Repositories
	settingsRepo ports.SettingsRepository

	// Services
	rendererService *service.RendererService
	settingsService *service.SettingsService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	base         service.RendererConfig
	frameLogSub  domain.SubscriptionID
	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// Renderer is the base renderer configuration before preset and saved settings
	Renderer service.RendererConfig

	// PresetPath is an optional YAML preset overlaid on Renderer
	PresetPath string

	// Scheduler selects the frame source: "display" or "ticker"
	Scheduler string

	// FrameRate is the ticker frame rate; ignored by the display scheduler
	FrameRate int

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:     "com.wavefield.app",
		AppName:   "Wave Field",
		Renderer:  service.DefaultRendererConfig(),
		Scheduler: SchedulerDisplay,
		FrameRate: scheduler.DefaultFrameRate,
		LogLevel:  loggerCfg.Level,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: "text",
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 3: Resolve the base renderer configuration
	base, err := resolveRendererConfig(config)
	if err != nil {
		return nil, err
	}
	app.base = base

	// Step 4: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus()
	app.eventBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))

	// Step 5: Create a frame scheduler
	switch config.Scheduler {
	case SchedulerDisplay, "":
		app.scheduler = fyneui.NewAnimationScheduler()
	case SchedulerTicker:
		app.ticker = scheduler.NewTicker(app.logger, config.FrameRate)
		app.scheduler = app.ticker
	default:
		return nil, domain.NewValidationError("scheduler", config.Scheduler, "must be display or ticker")
	}

	// Step 6: Create repositories and services
	app.settingsRepo = memory.NewSettingsRepository(app.fyneApp.Preferences())
	app.settingsService = service.NewSettingsService(app.logger, app.settingsRepo, app.eventBus)

	app.rendererService, err = service.NewRendererService(
		app.logger,
		app.settingsService.Apply(base),
		app.scheduler,
		app.eventBus,
	)
	if err != nil {
		app.closeInfrastructure()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// Step 7: Create UI
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, app.eventBus, app.logger)

	// Step 8: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger,
		app.rendererService,
		app.settingsService,
		app.eventBus,
		app.mainWindow,
		base,
	)
	app.mainWindow.SetPresenter(app.presenter)

	// Step 9: Visibility follows the window lifecycle
	app.fyneApp.Lifecycle().SetOnStarted(func() {
		app.eventBus.Publish(domain.NewSectionVisibleEvent())
	})
	app.mainWindow.SetOnBeforeClose(func() {
		app.eventBus.Publish(domain.NewSectionHiddenEvent())
	})

	app.frameLogSub = app.eventBus.SubscribeFiltered(domain.EventFrameRendered,
		func(event domain.Event) bool {
			e, ok := event.(domain.FrameRenderedEvent)
			return ok && e.Frame%frameLogInterval == 0
		},
		app.logFrame)

	return app, nil
}

// resolveRendererConfig overlays the optional preset on the configured defaults.
func resolveRendererConfig(cfg Config) (service.RendererConfig, error) {
	base := cfg.Renderer
	if cfg.PresetPath == "" {
		if err := base.Validate(); err != nil {
			return base, fmt.Errorf("invalid renderer configuration: %w", err)
		}
		return base, nil
	}

	preset, err := config.LoadPreset(cfg.PresetPath)
	if err != nil {
		return base, fmt.Errorf("failed to load preset: %w", err)
	}
	return preset.Apply(base)
}

func (a *Application) logFrame(event domain.Event) {
	e, ok := event.(domain.FrameRenderedEvent)
	if !ok {
		return
	}
	a.logger.Debug("frames rendered",
		slog.Uint64("frame", e.Frame),
		slog.Float64("time", e.Time),
		slog.Uint64("skipped", a.rendererService.SkippedFrames()))
}

// Run starts the application.
// This is called from main.go after the application is created.
func (a *Application) Run() error {
	a.logger.Info("wave field started")

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
	return nil
}

// Shutdown gracefully shuts down the application.
// It's safe to call multiple times (idempotent).
func (a *Application) Shutdown() error {
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		if a.presenter != nil {
			a.presenter.Shutdown()
		}
		if a.mainWindow != nil {
			a.mainWindow.Close()
		}
		if a.rendererService != nil {
			a.rendererService.Stop()
		}
		if a.frameLogSub != "" {
			a.eventBus.Unsubscribe(a.frameLogSub)
		}

		a.closeInfrastructure()
		a.logger.Info("application shutdown complete")
	})
	return nil
}

func (a *Application) closeInfrastructure() {
	if a.ticker != nil {
		a.ticker.Close()
	}
	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}
}

// GetEventBus returns the event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// GetServices returns the renderer and settings services.
func (a *Application) GetServices() (*service.RendererService, *service.SettingsService) {
	return a.rendererService, a.settingsService
}

// GetPresenter returns the presenter.
func (a *Application) GetPresenter() *fyneui.Presenter {
	return a.presenter
}

// GetMainWindow returns the main window.
func (a *Application) GetMainWindow() *fyneui.MainWindow {
	return a.mainWindow
}

// BaseConfig returns the renderer configuration before saved settings are applied.
func (a *Application) BaseConfig() service.RendererConfig {
	return a.base
}
