package wave

import (
	"fmt"
	"math"

	"github.com/tejashwikalptaru/wavefield/internal/domain"
)

// Config describes a collection of units.
type Config struct {
	Variant       domain.Variant
	Count         int
	TrailCapacity int // 0 disables trails
}

// DefaultConfig returns the peaked variant with five trailed units.
func DefaultConfig() Config {
	return Config{
		Variant:       domain.VariantPeaked,
		Count:         DefaultUnits,
		TrailCapacity: DefaultTrailCapacity,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := lookupProfile(c.Variant); err != nil {
		return err
	}
	if c.Count < 1 || c.Count > MaxUnits {
		return domain.NewValidationError("count", c.Count, fmt.Sprintf("must be between 1 and %d", MaxUnits))
	}
	if c.TrailCapacity < 0 {
		return domain.NewValidationError("trail_capacity", c.TrailCapacity, "must not be negative")
	}
	return nil
}

// Params are the immutable shape parameters of a unit.
type Params struct {
	Index     int
	Amplitude float64
	Frequency float64
	Damping   float64
	Phase     float64
	Speed     float64
}

// Unit is one decaying oscillator plus its glow particle.
// Params and Colors never change after construction; only the particle
// phase, position and trail advance from frame to frame.
type Unit struct {
	params  Params
	colors  Colors
	profile *profile

	particlePhase float64
	particle      domain.Point
	visible       bool
	trail         *Trail
}

// NewUnit creates unit i of a collection described by cfg.
func NewUnit(cfg Config, i int) (*Unit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if i < 0 || i >= cfg.Count {
		return nil, domain.NewValidationError("index", i, fmt.Sprintf("must be in [0, %d)", cfg.Count))
	}

	p, _ := lookupProfile(cfg.Variant)
	u := &Unit{
		params: Params{
			Index:     i,
			Amplitude: p.amplitude(i),
			Frequency: p.freqBase + float64(i)*p.freqStep,
			Damping:   p.dampBase + float64(i)*p.dampStep,
			Phase:     p.phase(i),
			Speed:     p.speedBase + float64(i)*p.speedStep,
		},
		colors:  p.colors(i, cfg.Count),
		profile: p,
	}
	if cfg.TrailCapacity > 0 {
		u.trail = NewTrail(cfg.TrailCapacity)
	}

	return u, nil
}

// NewUnits creates the full collection in index order.
func NewUnits(cfg Config) ([]*Unit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	units := make([]*Unit, cfg.Count)
	for i := range units {
		u, err := NewUnit(cfg, i)
		if err != nil {
			return nil, err
		}
		units[i] = u
	}
	return units, nil
}

// Params returns the shape parameters.
func (u *Unit) Params() Params {
	return u.params
}

// Colors returns the unit's colors.
func (u *Unit) Colors() Colors {
	return u.colors
}

// Motion returns the particle motion model.
func (u *Unit) Motion() Motion {
	return u.profile.motion
}

// CurveY returns the vertical displacement from the surface center at
// horizontal offset x and animation time t.
func (u *Unit) CurveY(x, t float64) float64 {
	p := u.profile
	xn := x / p.scale

	arg := u.params.Frequency*xn + u.params.Phase

	var envelope float64
	if p.breathDepth != 0 {
		// Breathing stretches the decay; at x = 0 the envelope stays 1.
		envelope = math.Exp(-u.params.Damping * xn * (1 + p.breathDepth*math.Sin(p.breathRate*t)))
	} else {
		envelope = math.Exp(-u.params.Damping * xn)
		arg += p.drift * t
	}

	return u.params.Amplitude * envelope * p.trig(arg)
}

// Sample visits the curve from x = 0 to x = width inclusive in steps of
// step pixels. The final sample is always taken at exactly width.
func (u *Unit) Sample(t, width, step float64, visit func(x, y float64)) {
	if width <= 0 {
		return
	}
	if step <= 0 {
		step = 1
	}

	for x := 0.0; ; x += step {
		if x > width {
			x = width
		}
		visit(x, u.CurveY(x, t))
		if x >= width {
			return
		}
	}
}
