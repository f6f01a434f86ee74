// Package main runs the wave field renderer in an Ebitengine window.
//
// Run:
//
//	go run ./cmd/ebiten -variant exponential
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/tejashwikalptaru/wavefield/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/scheduler"
	ebitenhost "github.com/tejashwikalptaru/wavefield/internal/adapter/ui/ebiten"
	"github.com/tejashwikalptaru/wavefield/internal/config"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/logger"
	"github.com/tejashwikalptaru/wavefield/internal/service"
)

func main() {
	presetPath := flag.String("preset", "", "YAML preset to start from")
	variant := flag.String("variant", "", "peaked or exponential")
	width := flag.Int("width", 960, "window width")
	height := flag.Int("height", 540, "window height")
	logLevel := flag.String("log-level", "", "DEBUG, INFO, WARN or ERROR")
	flag.Parse()

	logCfg := logger.DefaultConfig()
	if *logLevel != "" {
		level, err := logger.ParseLevel(*logLevel)
		if err != nil {
			log.Fatalf("Invalid log level: %v", err)
		}
		logCfg.Level = level
	}
	lg := logger.NewLogger(logCfg)

	cfg := service.DefaultRendererConfig()
	if *presetPath != "" {
		preset, err := config.LoadPreset(*presetPath)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		if cfg, err = preset.Apply(cfg); err != nil {
			log.Fatalf("Invalid preset: %v", err)
		}
	}
	if *variant != "" {
		v, err := domain.ParseVariant(*variant)
		if err != nil {
			log.Fatalf("Invalid variant: %v", err)
		}
		cfg.Wave.Variant = v
	}

	bus := eventbus.NewSyncEventBus()
	bus.SetLogger(lg.With(slog.String("component", "eventbus")))
	defer bus.Close()

	clock := scheduler.NewManual()
	renderer, err := service.NewRendererService(lg, cfg, clock, bus)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	host := ebitenhost.NewHost(lg, renderer, clock, bus)
	if err := host.Run("Wave Field", *width, *height); err != nil {
		log.Fatalf("Ebiten host failed: %v", err)
	}
}
