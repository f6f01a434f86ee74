// Package domain contains core models and logic with no external dependencies.
// This package defines the fundamental entities of the wave field renderer.
package domain

import (
	"fmt"
	"strings"
)

// Dimensions is the pixel size of a drawing surface.
type Dimensions struct {
	Width  float64
	Height float64
}

// Valid reports whether both sides are strictly positive.
// Surfaces that have not been laid out yet report zero and are not renderable.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// CenterY returns the vertical center of the surface.
func (d Dimensions) CenterY() float64 {
	return d.Height / 2
}

// String returns a compact WxH form for logging.
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%g", d.Width, d.Height)
}

// Point is a position on the surface in pixels.
type Point struct {
	X float64
	Y float64
}

// RendererState represents the lifecycle state of a renderer.
type RendererState int

const (
	// StateUninitialized means the renderer was constructed but never activated.
	StateUninitialized RendererState = iota

	// StateRunning means the renderer is subscribed to frame ticks.
	StateRunning

	// StateStopped means the renderer was stopped and renders no further frames.
	StateStopped
)

// String returns a human-readable representation of the state.
func (s RendererState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Variant selects the family of curves, colors and particle motion.
type Variant string

// Available wave variants.
const (
	// VariantPeaked draws cosine curves that all peak at the left edge.
	// Particles sweep left to right and leave a fading trail.
	VariantPeaked Variant = "peaked"

	// VariantExponential draws staggered sine curves that drift horizontally.
	// Particles swing back and forth across the surface.
	VariantExponential Variant = "exponential"
)

// ParseVariant converts a user-supplied name into a Variant.
func ParseVariant(name string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(name))) {
	case VariantPeaked:
		return VariantPeaked, nil
	case VariantExponential:
		return VariantExponential, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidVariant, name)
	}
}

// VariantInfo contains information about a variant.
type VariantInfo struct {
	Variant Variant
	Name    string
}

// Variants returns all variants with their display names.
func Variants() []VariantInfo {
	return []VariantInfo{
		{VariantPeaked, "Peaked"},
		{VariantExponential, "Exponential"},
	}
}
