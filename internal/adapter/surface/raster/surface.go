// Package raster provides a software drawing surface backed by an *image.RGBA.
// Paths and discs are rasterized with anti-aliased coverage by golang.org/x/image/vector
// and composited with the Porter-Duff "over" operator.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"golang.org/x/image/vector"
)

const minCircleSegments = 16

// Surface implements ports.Surface on an in-memory RGBA image.
//
// Thread-safe: every operation holds the surface mutex, so hosts may read a
// snapshot with Image while the renderer draws.
type Surface struct {
	mu sync.Mutex

	img *image.RGBA
	z   *vector.Rasterizer

	path    [][]domain.Point
	stroke  color.NRGBA
	fill    color.NRGBA
	grad    *ports.RadialGradient
	lineW   float64
	opacity float64
}

// New creates a transparent surface of the given pixel size.
func New(width, height int) *Surface {
	return &Surface{
		img:     image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		z:       vector.NewRasterizer(0, 0),
		stroke:  color.NRGBA{A: 0xff},
		fill:    color.NRGBA{A: 0xff},
		lineW:   1,
		opacity: 1,
	}
}

// Resize changes the pixel size. The content is cleared when the size
// changes. Reports whether the size changed.
func (s *Surface) Resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.img.Rect.Dx() == width && s.img.Rect.Dy() == height {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

// Image returns a copy of the current pixels.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Size implements ports.Surface.
func (s *Surface) Size() (width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.img.Rect.Dx()), float64(s.img.Rect.Dy())
}

// ClearRect implements ports.Surface.
func (s *Surface) ClearRect(x, y, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+width)), int(math.Ceil(y+height)),
	).Intersect(s.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

// BeginPath implements ports.Surface.
func (s *Surface) BeginPath() {
	s.mu.Lock()
	s.path = s.path[:0]
	s.mu.Unlock()
}

// MoveTo implements ports.Surface.
func (s *Surface) MoveTo(x, y float64) {
	s.mu.Lock()
	s.path = append(s.path, []domain.Point{{X: x, Y: y}})
	s.mu.Unlock()
}

// LineTo implements ports.Surface.
// A LineTo without a preceding MoveTo starts a sub-path at (x, y).
func (s *Surface) LineTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.path) == 0 {
		s.path = append(s.path, []domain.Point{{X: x, Y: y}})
		return
	}
	last := len(s.path) - 1
	s.path[last] = append(s.path[last], domain.Point{X: x, Y: y})
}

// Stroke implements ports.Surface.
// Each segment is widened into a quad; all quads share one coverage pass so
// joints are not blended twice.
func (s *Surface) Stroke() {
	s.mu.Lock()
	defer s.mu.Unlock()

	hw := s.lineW / 2
	if hw <= 0 {
		return
	}

	var quads [][4]domain.Point
	for _, sub := range s.path {
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			dx, dy := b.X-a.X, b.Y-a.Y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*hw, dx/length*hw
			quads = append(quads, [4]domain.Point{
				{X: a.X + nx, Y: a.Y + ny},
				{X: b.X + nx, Y: b.Y + ny},
				{X: b.X - nx, Y: b.Y - ny},
				{X: a.X - nx, Y: a.Y - ny},
			})
		}
	}
	if len(quads) == 0 {
		return
	}

	polys := make([][]domain.Point, len(quads))
	for i := range quads {
		polys[i] = quads[i][:]
	}
	s.fillPolygons(polys, image.NewUniform(s.withOpacity(s.stroke)))
}

// SetStrokeColor implements ports.Surface.
func (s *Surface) SetStrokeColor(c color.NRGBA) {
	s.mu.Lock()
	s.stroke = c
	s.mu.Unlock()
}

// SetFillColor implements ports.Surface.
func (s *Surface) SetFillColor(c color.NRGBA) {
	s.mu.Lock()
	s.fill = c
	s.grad = nil
	s.mu.Unlock()
}

// SetFillGradient implements ports.Surface.
func (s *Surface) SetFillGradient(g ports.RadialGradient) {
	s.mu.Lock()
	s.grad = &g
	s.mu.Unlock()
}

// SetLineWidth implements ports.Surface.
func (s *Surface) SetLineWidth(width float64) {
	s.mu.Lock()
	s.lineW = width
	s.mu.Unlock()
}

// SetGlobalAlpha implements ports.Surface.
func (s *Surface) SetGlobalAlpha(alpha float64) {
	s.mu.Lock()
	s.opacity = math.Max(0, math.Min(1, alpha))
	s.mu.Unlock()
}

// FillCircle implements ports.Surface.
func (s *Surface) FillCircle(x, y, radius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if radius <= 0 {
		return
	}

	segments := max(minCircleSegments, int(math.Ceil(2*math.Pi*radius/2)))
	poly := make([]domain.Point, segments)
	for i := range poly {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		poly[i] = domain.Point{X: x + math.Cos(angle)*radius, Y: y + math.Sin(angle)*radius}
	}

	var src image.Image
	if s.grad != nil {
		src = gradientImage{grad: *s.grad, opacity: s.opacity}
	} else {
		src = image.NewUniform(s.withOpacity(s.fill))
	}
	s.fillPolygons([][]domain.Point{poly}, src)
}

// fillPolygons rasterizes the closed polygons as one mask and composites src
// through it. The rasterizer only covers the clipped bounding box.
// Must be called with s.mu locked.
func (s *Surface) fillPolygons(polys [][]domain.Point, src image.Image) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsNaN(minX) || math.IsNaN(minY) || math.IsInf(minX, 0) || math.IsInf(minY, 0) {
		return
	}

	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(s.img.Rect)
	if r.Empty() {
		return
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	s.z.Reset(r.Dx(), r.Dy())
	s.z.DrawOp = draw.Over
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		s.z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			s.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		s.z.ClosePath()
	}
	s.z.Draw(s.img, r, src, r.Min)
}

// withOpacity applies the global alpha.
// Must be called with s.mu locked.
func (s *Surface) withOpacity(c color.NRGBA) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * s.opacity))
	return c
}

// gradientImage is an unbounded source image that evaluates a radial gradient
// at pixel centers.
type gradientImage struct {
	grad    ports.RadialGradient
	opacity float64
}

func (g gradientImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)
}

func (g gradientImage) At(x, y int) color.Color {
	d := math.Hypot(float64(x)+0.5-g.grad.X, float64(y)+0.5-g.grad.Y)
	c := g.grad.ColorAt(d)
	c.A = uint8(math.Round(float64(c.A) * g.opacity))
	return c
}

// Verify interface implementation at compile time.
var _ ports.Surface = (*Surface)(nil)
