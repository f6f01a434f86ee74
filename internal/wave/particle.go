package wave

import (
	"math"

	"github.com/tejashwikalptaru/wavefield/internal/domain"
)

// Advance moves the particle one frame along its curve at time t.
// The particle's vertical position is the curve height plus the surface center.
func (u *Unit) Advance(t float64, dims domain.Dimensions) {
	u.particlePhase += u.params.Speed

	var x float64
	switch u.profile.motion {
	case MotionOscillatingSweep:
		margin := math.Min(SweepMargin, dims.Width/4)
		x = (math.Sin(u.particlePhase)*0.5+0.5)*(dims.Width-2*margin) + margin
		u.visible = true
	default:
		x = math.Mod(u.particlePhase*SweepScale, dims.Width+SweepMargin)
		u.visible = x <= dims.Width
		if !u.visible {
			u.particlePhase = 0
		}
	}

	u.particle = domain.Point{X: x, Y: u.CurveY(x, t) + dims.CenterY()}
	if u.trail != nil {
		u.trail.Push(u.particle)
	}
}

// Particle returns the last computed particle position and whether it is
// on the surface.
func (u *Unit) Particle() (domain.Point, bool) {
	return u.particle, u.visible
}

// Trail returns the particle trail, or nil when trails are disabled.
func (u *Unit) Trail() *Trail {
	return u.trail
}
