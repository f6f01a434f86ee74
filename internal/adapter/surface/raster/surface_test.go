package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func TestSurface_Size(t *testing.T) {
	s := New(32, 16)

	w, h := s.Size()
	assert.Equal(t, 32.0, w)
	assert.Equal(t, 16.0, h)
}

func TestSurface_NegativeSizeIsEmpty(t *testing.T) {
	s := New(-5, 10)

	w, h := s.Size()
	assert.Zero(t, w)
	assert.Equal(t, 10.0, h)

	// Drawing on an empty surface must not panic.
	s.FillCircle(0, 0, 4)
	s.ClearRect(0, 0, 10, 10)
}

func TestSurface_Resize(t *testing.T) {
	s := New(10, 10)
	s.SetFillColor(red)
	s.FillCircle(5, 5, 3)

	assert.False(t, s.Resize(10, 10), "same size is not a change")
	assert.Equal(t, uint8(0xff), s.Image().RGBAAt(5, 5).A, "content survives a no-op resize")

	assert.True(t, s.Resize(20, 8))
	w, h := s.Size()
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 8.0, h)
	assert.Zero(t, s.Image().RGBAAt(5, 5).A, "content is cleared on resize")
}

func TestSurface_FillCircle(t *testing.T) {
	s := New(20, 20)
	s.SetFillColor(red)
	s.FillCircle(10, 10, 4)

	img := s.Image()
	center := img.RGBAAt(10, 10)
	assert.InDelta(t, 0xff, center.R, 1)
	assert.InDelta(t, 0xff, center.A, 1)
	assert.Zero(t, center.G)

	assert.Zero(t, img.RGBAAt(1, 1).A, "pixels outside the disc stay transparent")
	assert.Zero(t, img.RGBAAt(18, 10).A)
}

func TestSurface_FillCirclePartiallyOutside(t *testing.T) {
	s := New(10, 10)
	s.SetFillColor(red)

	require.NotPanics(t, func() {
		s.FillCircle(0, 0, 5)
		s.FillCircle(10, 10, 50)
		s.FillCircle(-100, -100, 3)
	})
	assert.InDelta(t, 0xff, s.Image().RGBAAt(5, 5).A, 1)
}

func TestSurface_GlobalAlpha(t *testing.T) {
	s := New(20, 20)
	s.SetFillColor(red)
	s.SetGlobalAlpha(0.5)
	s.FillCircle(10, 10, 5)

	assert.InDelta(t, 128, s.Image().RGBAAt(10, 10).A, 2)

	s.SetGlobalAlpha(7)
	s.ClearRect(0, 0, 20, 20)
	s.FillCircle(10, 10, 5)
	assert.InDelta(t, 0xff, s.Image().RGBAAt(10, 10).A, 1, "alpha is clamped to 1")
}

func TestSurface_Stroke(t *testing.T) {
	s := New(20, 20)
	s.SetStrokeColor(red)
	s.SetLineWidth(2)
	s.BeginPath()
	s.MoveTo(0, 10)
	s.LineTo(20, 10)
	s.Stroke()

	img := s.Image()
	assert.InDelta(t, 0xff, img.RGBAAt(10, 9).A, 1)
	assert.InDelta(t, 0xff, img.RGBAAt(10, 10).A, 1)
	assert.Zero(t, img.RGBAAt(10, 14).A)
	assert.Zero(t, img.RGBAAt(10, 5).A)
}

func TestSurface_StrokePolyline(t *testing.T) {
	s := New(30, 30)
	s.SetStrokeColor(red)
	s.SetLineWidth(2)
	s.BeginPath()
	s.MoveTo(5, 5)
	s.LineTo(25, 5)
	s.LineTo(25, 25)
	s.Stroke()

	img := s.Image()
	assert.InDelta(t, 0xff, img.RGBAAt(15, 5).A, 1)
	assert.InDelta(t, 0xff, img.RGBAAt(25, 15).A, 1)
	assert.Zero(t, img.RGBAAt(15, 15).A)
}

func TestSurface_BeginPathDiscardsSegments(t *testing.T) {
	s := New(20, 20)
	s.SetStrokeColor(red)
	s.SetLineWidth(2)
	s.MoveTo(0, 5)
	s.LineTo(20, 5)
	s.BeginPath()
	s.Stroke()

	assert.Zero(t, s.Image().RGBAAt(10, 5).A)
}

func TestSurface_ClearRect(t *testing.T) {
	s := New(20, 20)
	s.SetFillColor(red)
	s.FillCircle(5, 5, 4)
	s.FillCircle(15, 15, 4)

	s.ClearRect(0, 0, 10, 10)

	img := s.Image()
	assert.Zero(t, img.RGBAAt(5, 5).A)
	assert.InDelta(t, 0xff, img.RGBAAt(15, 15).A, 1)
}

func TestSurface_Gradient(t *testing.T) {
	s := New(40, 40)
	glow := color.NRGBA{R: 0x20, G: 0x40, B: 0xff, A: 0x80}
	g := ports.NewRadialGradient(20, 20, 0, 12).
		AddColorStop(0, red).
		AddColorStop(1, color.NRGBA{R: glow.R, G: glow.G, B: glow.B})
	s.SetFillGradient(g)
	s.FillCircle(20, 20, 12)

	img := s.Image()
	center := img.RGBAAt(20, 20)
	edge := img.RGBAAt(20, 30)

	assert.Greater(t, center.A, edge.A, "gradient fades toward the rim")
	assert.Greater(t, center.R, center.B, "center takes the first stop")
	assert.Zero(t, img.RGBAAt(2, 2).A)
}

func TestSurface_SetFillColorReplacesGradient(t *testing.T) {
	s := New(20, 20)
	s.SetFillGradient(ports.NewRadialGradient(10, 10, 0, 5).AddColorStop(0, color.NRGBA{}))
	s.SetFillColor(red)
	s.FillCircle(10, 10, 4)

	assert.InDelta(t, 0xff, s.Image().RGBAAt(10, 10).R, 1)
}

func TestSurface_ImageIsCopy(t *testing.T) {
	s := New(4, 4)
	img := s.Image()
	img.Pix[0] = 0xff

	assert.Zero(t, s.Image().Pix[0])
}
