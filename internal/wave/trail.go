package wave

import (
	"github.com/tejashwikalptaru/wavefield/internal/domain"
)

// Trail is a fixed-capacity FIFO of recent particle positions.
type Trail struct {
	points []domain.Point
	start  int
	size   int
}

// NewTrail creates an empty trail. A capacity below one is raised to one.
func NewTrail(capacity int) *Trail {
	return &Trail{points: make([]domain.Point, max(capacity, 1))}
}

// Push appends p, evicting the oldest entry when full.
func (t *Trail) Push(p domain.Point) {
	if t.size < len(t.points) {
		t.points[(t.start+t.size)%len(t.points)] = p
		t.size++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % len(t.points)
}

// Len returns the number of retained entries.
func (t *Trail) Len() int {
	return t.size
}

// Cap returns the fixed capacity.
func (t *Trail) Cap() int {
	return len(t.points)
}

// Each visits entries from oldest to newest.
func (t *Trail) Each(fn func(i int, p domain.Point)) {
	for i := 0; i < t.size; i++ {
		fn(i, t.points[(t.start+i)%len(t.points)])
	}
}

// Points returns a copy of the entries from oldest to newest.
func (t *Trail) Points() []domain.Point {
	out := make([]domain.Point, 0, t.size)
	t.Each(func(_ int, p domain.Point) {
		out = append(out, p)
	})
	return out
}

// Opacity returns the draw opacity of entry i in a trail of n entries,
// rising linearly from near zero for the oldest to maxOpacity for the newest.
func Opacity(i, n int, maxOpacity float64) float64 {
	if n <= 0 {
		return 0
	}
	return maxOpacity * float64(i+1) / float64(n)
}
