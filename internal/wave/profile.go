// Package wave models the damped oscillators and glow particles drawn by the renderer.
//
// A Unit is one decaying curve plus the particle riding it. Units are created
// as a fixed collection whose shape parameters are derived from each unit's
// index, so later units are smaller, faster and fainter or warmer.
package wave

import (
	"math"

	"github.com/tejashwikalptaru/wavefield/internal/domain"
)

const (
	// MaxUnits bounds the collection size so derived colors stay distinct.
	MaxUnits = 32

	// DefaultUnits is the collection size used when none is configured.
	DefaultUnits = 5

	// DefaultTrailCapacity is the number of past particle positions kept.
	DefaultTrailCapacity = 15

	// SweepScale converts particle phase into pixels for the linear sweep.
	SweepScale = 400.0

	// SweepMargin is the off-surface run-out of the linear sweep and the
	// inset of the oscillating sweep.
	SweepMargin = 40.0
)

// Motion is the particle motion model of a variant.
type Motion int

const (
	// MotionLinearSweep moves the particle left to right and restarts it at the left edge.
	MotionLinearSweep Motion = iota

	// MotionOscillatingSweep swings the particle back and forth across the surface.
	MotionOscillatingSweep
)

// String returns a human-readable representation of the motion model.
func (m Motion) String() string {
	switch m {
	case MotionLinearSweep:
		return "linear"
	case MotionOscillatingSweep:
		return "oscillating"
	default:
		return "unknown"
	}
}

// profile holds the constants that distinguish one variant from another.
type profile struct {
	// shape
	amplitude func(i int) float64
	freqBase  float64
	freqStep  float64
	dampBase  float64
	dampStep  float64
	phase     func(i int) float64
	trig      func(float64) float64
	scale     float64

	// time coupling: exactly one of drift and breathDepth is non-zero
	drift       float64
	breathDepth float64
	breathRate  float64

	// particle
	motion    Motion
	speedBase float64
	speedStep float64

	colors func(i, n int) Colors
}

var profiles = map[domain.Variant]*profile{
	domain.VariantPeaked: {
		amplitude: func(i int) float64 {
			return 80 / math.Sqrt(float64(i+1))
		},
		freqBase:    1.0,
		freqStep:    0.35,
		dampBase:    0.08,
		dampStep:    0.04,
		phase:       func(int) float64 { return 0 },
		trig:        math.Cos,
		scale:       30,
		breathDepth: 0.25,
		breathRate:  0.8,
		motion:      MotionLinearSweep,
		speedBase:   0.008,
		speedStep:   0.002,
		colors:      peakedColors,
	},
	domain.VariantExponential: {
		amplitude: func(i int) float64 {
			return 70 * math.Exp(-float64(i)*0.25)
		},
		freqBase:  0.8,
		freqStep:  0.3,
		dampBase:  0.03,
		dampStep:  0.015,
		phase:     func(i int) float64 { return float64(i) * math.Pi / 4 },
		trig:      math.Sin,
		scale:     40,
		drift:     2.0,
		motion:    MotionOscillatingSweep,
		speedBase: 0.01,
		speedStep: 0.003,
		colors:    exponentialColors,
	},
}

func lookupProfile(v domain.Variant) (*profile, error) {
	p, ok := profiles[v]
	if !ok {
		return nil, domain.NewValidationError("variant", v, domain.ErrInvalidVariant.Error())
	}
	return p, nil
}
