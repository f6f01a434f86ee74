// Package config loads renderer presets from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/service"
	"gopkg.in/yaml.v3"
)

// Preset is a partial renderer configuration. Omitted fields keep the value
// of the configuration the preset is applied to.
type Preset struct {
	Name           string   `yaml:"name"`
	Variant        string   `yaml:"variant"`
	Units          int      `yaml:"units"`
	TrailCapacity  *int     `yaml:"trailCapacity"`
	TimeStep       float64  `yaml:"timeStep"`
	SampleStep     float64  `yaml:"sampleStep"`
	ShowCenterline *bool    `yaml:"showCenterline"`
	TrailOpacity   *float64 `yaml:"trailOpacity"`
}

// LoadPreset reads and validates a preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, path)
		}
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	preset, err := ParsePreset(data)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return preset, nil
}

// ParsePreset decodes and validates a preset document.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func ParsePreset(data []byte) (*Preset, error) {
	var preset Preset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&preset); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}

	if err := preset.validate(); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}
	return &preset, nil
}

func (p *Preset) validate() error {
	if p.Variant != "" {
		if _, err := domain.ParseVariant(p.Variant); err != nil {
			return err
		}
	}
	if p.Units < 0 {
		return domain.NewValidationError("units", p.Units, "must not be negative")
	}
	if p.TrailCapacity != nil && *p.TrailCapacity < 0 {
		return domain.NewValidationError("trailCapacity", *p.TrailCapacity, "must not be negative")
	}
	if p.TimeStep < 0 {
		return domain.NewValidationError("timeStep", p.TimeStep, "must not be negative")
	}
	return nil
}

// Apply overlays the preset on cfg and validates the result.
func (p *Preset) Apply(cfg service.RendererConfig) (service.RendererConfig, error) {
	if p.Variant != "" {
		variant, err := domain.ParseVariant(p.Variant)
		if err != nil {
			return cfg, err
		}
		cfg.Wave.Variant = variant
	}
	if p.Units > 0 {
		cfg.Wave.Count = p.Units
	}
	if p.TrailCapacity != nil {
		cfg.Wave.TrailCapacity = *p.TrailCapacity
	}
	if p.TimeStep > 0 {
		cfg.TimeStep = p.TimeStep
	}
	if p.SampleStep > 0 {
		cfg.SampleStep = p.SampleStep
	}
	if p.ShowCenterline != nil {
		cfg.ShowCenterline = *p.ShowCenterline
	}
	if p.TrailOpacity != nil {
		cfg.TrailOpacity = *p.TrailOpacity
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return cfg, nil
}
