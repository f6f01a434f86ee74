// Package scheduler provides frame schedulers that do not depend on a
// display: a manually stepped one and a fixed-rate ticker.
package scheduler

import (
	"sync"
	"sync/atomic"

	"github.com/tejashwikalptaru/wavefield/internal/ports"
)

// Manual delivers a tick only when Tick is called.
// Used by tests, the headless snapshot and the ebiten host, whose game loop
// already paces updates.
type Manual struct {
	mu   sync.Mutex
	subs []*manualSub
}

type manualSub struct {
	owner    *Manual
	fn       func()
	canceled atomic.Bool
}

// NewManual creates a scheduler with no subscribers.
func NewManual() *Manual {
	return &Manual{}
}

// Subscribe implements ports.FrameScheduler.
func (m *Manual) Subscribe(fn func()) ports.Subscription {
	sub := &manualSub{owner: m, fn: fn}

	m.mu.Lock()
	m.subs = append(m.subs, sub)
	m.mu.Unlock()

	return sub
}

// Tick runs every subscriber once, in subscription order, on the calling
// goroutine. A subscription canceled by an earlier callback in the same
// tick is skipped.
func (m *Manual) Tick() {
	m.mu.Lock()
	subs := append([]*manualSub(nil), m.subs...)
	m.mu.Unlock()

	for _, sub := range subs {
		if !sub.canceled.Load() {
			sub.fn()
		}
	}
}

// Advance runs n ticks.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Subscribers returns the number of live subscriptions.
func (m *Manual) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Cancel implements ports.Subscription.
func (s *manualSub) Cancel() {
	if !s.canceled.CompareAndSwap(false, true) {
		return
	}

	m := s.owner
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subs {
		if sub == s {
			m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
			return
		}
	}
}

// Verify interface implementation at compile time.
var _ ports.FrameScheduler = (*Manual)(nil)
