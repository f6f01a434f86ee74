// Package ports define the drawing surface the renderer paints on.
package ports

import (
	"image/color"
)

// Surface is a 2D drawing context with canvas-like path and fill operations.
// The renderer is the only writer while it is running.
//
// Coordinates are in pixels with the origin at the top-left corner.
// Colors are non-premultiplied; the global alpha multiplies every subsequent
// stroke and fill.
type Surface interface {
	// Size returns the current layout size of the surface.
	// A surface that has not been laid out yet reports zero.
	Size() (width, height float64)

	// ClearRect resets the given region to fully transparent.
	ClearRect(x, y, width, height float64)

	// BeginPath discards the current path.
	BeginPath()

	// MoveTo starts a new sub-path at (x, y).
	MoveTo(x, y float64)

	// LineTo appends a straight segment to the current sub-path.
	LineTo(x, y float64)

	// Stroke draws the current path with the stroke color and line width.
	Stroke()

	// SetStrokeColor sets the color used by Stroke.
	SetStrokeColor(c color.NRGBA)

	// SetFillColor sets a solid fill used by FillCircle.
	SetFillColor(c color.NRGBA)

	// SetFillGradient sets a radial gradient fill used by FillCircle.
	SetFillGradient(g RadialGradient)

	// SetLineWidth sets the stroke width in pixels.
	SetLineWidth(width float64)

	// SetGlobalAlpha sets the opacity multiplier in [0, 1].
	SetGlobalAlpha(alpha float64)

	// FillCircle fills a disc centered at (x, y).
	FillCircle(x, y, radius float64)
}

// ColorStop is one stop of a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// RadialGradient blends between stops from radius R0 to R1 around (X, Y).
type RadialGradient struct {
	X, Y   float64
	R0, R1 float64
	Stops  []ColorStop
}

// NewRadialGradient creates a gradient centered on (x, y) without stops.
func NewRadialGradient(x, y, r0, r1 float64) RadialGradient {
	return RadialGradient{X: x, Y: y, R0: r0, R1: r1}
}

// AddColorStop returns a copy of the gradient with the stop appended.
// Stops must be added in increasing offset order.
func (g RadialGradient) AddColorStop(offset float64, c color.NRGBA) RadialGradient {
	stops := make([]ColorStop, len(g.Stops), len(g.Stops)+1)
	copy(stops, g.Stops)
	g.Stops = append(stops, ColorStop{Offset: offset, Color: c})
	return g
}

// ColorAt returns the gradient color at distance d from the center.
func (g RadialGradient) ColorAt(d float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}

	span := g.R1 - g.R0
	var pos float64
	if span > 0 {
		pos = (d - g.R0) / span
	}
	if pos <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}

	for i := 1; i < len(g.Stops); i++ {
		prev, next := g.Stops[i-1], g.Stops[i]
		if pos > next.Offset {
			continue
		}
		width := next.Offset - prev.Offset
		if width <= 0 {
			return next.Color
		}
		return lerpNRGBA(prev.Color, next.Color, (pos-prev.Offset)/width)
	}

	return g.Stops[len(g.Stops)-1].Color
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}
