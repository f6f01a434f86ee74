// Package main is the production entry point for the Wave Field desktop app.
//
// Wave Field draws damped waves with glowing particles riding them:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
// - Pluggable frame schedulers and drawing surfaces
//
// Build:
//
//	go build -o build/wavefield ./cmd
//
// Run:
//
//	./build/wavefield -preset presets/hero.yaml
//	./build/wavefield -snapshot waves.png -ticks 240 -variant exponential
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tejashwikalptaru/wavefield/internal/app"
	"github.com/tejashwikalptaru/wavefield/internal/config"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/logger"
)

func main() {
	presetPath := flag.String("preset", "", "YAML preset to start from")
	schedulerKind := flag.String("scheduler", app.SchedulerDisplay, "frame source: display or ticker")
	frameRate := flag.Int("fps", 60, "frame rate of the ticker scheduler")
	logLevel := flag.String("log-level", "", "DEBUG, INFO, WARN or ERROR (default from WAVEFIELD_LOG_LEVEL)")
	snapshot := flag.String("snapshot", "", "render off-screen into this PNG file and exit")
	ticks := flag.Int("ticks", 120, "frames to render before taking the snapshot")
	width := flag.Int("width", 960, "snapshot width in pixels")
	height := flag.Int("height", 540, "snapshot height in pixels")
	variant := flag.String("variant", "", "snapshot variant: peaked or exponential")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	// Create default configuration
	cfg := app.DefaultConfig()
	cfg.PresetPath = *presetPath
	cfg.Scheduler = *schedulerKind
	cfg.FrameRate = *frameRate
	if *logLevel != "" {
		level, err := logger.ParseLevel(*logLevel)
		if err != nil {
			log.Fatalf("Invalid log level: %v", err)
		}
		cfg.LogLevel = level
	}

	if *snapshot != "" {
		opts := app.SnapshotOptions{Width: *width, Height: *height, Ticks: *ticks}
		if err := renderSnapshot(cfg, *variant, opts, *snapshot); err != nil {
			log.Fatalf("Snapshot failed: %v", err)
		}
		return
	}

	// Create the application with dependency injection
	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	if err := application.Run(); err != nil {
		log.Printf("Application error: %v", err)
	}
}

func renderSnapshot(cfg app.Config, variant string, opts app.SnapshotOptions, path string) error {
	renderer := cfg.Renderer
	if cfg.PresetPath != "" {
		preset, err := config.LoadPreset(cfg.PresetPath)
		if err != nil {
			return err
		}
		if renderer, err = preset.Apply(renderer); err != nil {
			return err
		}
	}
	if variant != "" {
		v, err := domain.ParseVariant(variant)
		if err != nil {
			return err
		}
		renderer.Wave.Variant = v
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	lg := logger.NewLogger(logger.Config{Level: cfg.LogLevel, Format: "text"})
	if err := app.RenderSnapshot(lg, renderer, opts, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
