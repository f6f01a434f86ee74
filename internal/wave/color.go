package wave

import (
	"image/color"
	"math"
)

// Site palette.
var (
	ColorPrimary   = color.NRGBA{R: 0x00, G: 0x4e, B: 0x7a, A: 0xff}
	ColorSecondary = color.NRGBA{R: 0x00, G: 0xa8, B: 0xcc, A: 0xff}
	ColorAccent    = color.NRGBA{R: 0xff, G: 0x6b, B: 0x35, A: 0xff}
)

// Colors are the three colors a unit draws with.
type Colors struct {
	Main     color.NRGBA // curve stroke
	Particle color.NRGBA // particle core and inner glow
	Glow     color.NRGBA // outer glow before it fades out
}

// peakedColors blends from the cool primary to the warm accent while fading out.
func peakedColors(i, n int) Colors {
	t := float64(i) / float64(n)
	main := lerpRGB(ColorPrimary, ColorAccent, t)
	main.A = alpha(0.85 - 0.5*t)
	return deriveColors(main)
}

// exponentialColors cycles the palette while fading in.
func exponentialColors(i, n int) Colors {
	palette := [3]color.NRGBA{ColorPrimary, ColorSecondary, ColorAccent}
	t := float64(i) / float64(n)
	main := palette[i%len(palette)]
	main.A = alpha(0.3 + 0.6*t)
	return deriveColors(main)
}

func deriveColors(main color.NRGBA) Colors {
	particle := lerpRGB(main, color.NRGBA{R: 0xff, G: 0xff, B: 0xff}, 0.3)
	particle.A = alpha(0.95)

	glow := main
	glow.A = alpha(0.35)

	return Colors{Main: main, Particle: particle, Glow: glow}
}

// lerpRGB blends the color channels of a and b; alpha is left at zero.
func lerpRGB(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

func alpha(a float64) uint8 {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return uint8(math.Round(a * 255))
}

// Transparent returns c with zero alpha.
func Transparent(c color.NRGBA) color.NRGBA {
	c.A = 0
	return c
}
