// Package mock provides a recording implementation of ports.Surface for testing.
package mock

import (
	"image/color"
	"sync"

	"github.com/tejashwikalptaru/wavefield/internal/ports"
)

// Op is one recorded surface call.
type Op struct {
	Name     string
	Args     []float64
	Color    color.NRGBA
	Gradient *ports.RadialGradient
}

// Surface records every drawing call without producing pixels.
// Size is controlled by the test through SetSize.
type Surface struct {
	mu     sync.Mutex
	width  float64
	height float64
	ops    []Op
}

// NewSurface creates a recording surface of the given size.
func NewSurface(width, height float64) *Surface {
	return &Surface{width: width, height: height}
}

// SetSize simulates a layout change.
func (s *Surface) SetSize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Ops returns a copy of the recorded calls.
func (s *Surface) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Op, len(s.ops))
	copy(out, s.ops)
	return out
}

// Count returns how many calls with the given name were recorded.
func (s *Surface) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, op := range s.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = nil
}

func (s *Surface) record(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
}

// Size implements ports.Surface.
func (s *Surface) Size() (width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// ClearRect implements ports.Surface.
func (s *Surface) ClearRect(x, y, width, height float64) {
	s.record(Op{Name: "ClearRect", Args: []float64{x, y, width, height}})
}

// BeginPath implements ports.Surface.
func (s *Surface) BeginPath() {
	s.record(Op{Name: "BeginPath"})
}

// MoveTo implements ports.Surface.
func (s *Surface) MoveTo(x, y float64) {
	s.record(Op{Name: "MoveTo", Args: []float64{x, y}})
}

// LineTo implements ports.Surface.
func (s *Surface) LineTo(x, y float64) {
	s.record(Op{Name: "LineTo", Args: []float64{x, y}})
}

// Stroke implements ports.Surface.
func (s *Surface) Stroke() {
	s.record(Op{Name: "Stroke"})
}

// SetStrokeColor implements ports.Surface.
func (s *Surface) SetStrokeColor(c color.NRGBA) {
	s.record(Op{Name: "SetStrokeColor", Color: c})
}

// SetFillColor implements ports.Surface.
func (s *Surface) SetFillColor(c color.NRGBA) {
	s.record(Op{Name: "SetFillColor", Color: c})
}

// SetFillGradient implements ports.Surface.
func (s *Surface) SetFillGradient(g ports.RadialGradient) {
	s.record(Op{Name: "SetFillGradient", Gradient: &g})
}

// SetLineWidth implements ports.Surface.
func (s *Surface) SetLineWidth(width float64) {
	s.record(Op{Name: "SetLineWidth", Args: []float64{width}})
}

// SetGlobalAlpha implements ports.Surface.
func (s *Surface) SetGlobalAlpha(alpha float64) {
	s.record(Op{Name: "SetGlobalAlpha", Args: []float64{alpha}})
}

// FillCircle implements ports.Surface.
func (s *Surface) FillCircle(x, y, radius float64) {
	s.record(Op{Name: "FillCircle", Args: []float64{x, y, radius}})
}

// Verify interface implementation at compile time.
var _ ports.Surface = (*Surface)(nil)
