package scheduler

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tejashwikalptaru/wavefield/internal/ports"
)

// DefaultFrameRate is the tick rate used when none is configured.
const DefaultFrameRate = 60

// Ticker delivers ticks at a fixed rate from one goroutine per subscription.
// Callbacks of one subscription never overlap; a slow callback makes the
// ticker drop ticks rather than queue them.
type Ticker struct {
	logger   *slog.Logger
	interval time.Duration

	mu     sync.Mutex
	subs   map[*tickerSub]struct{}
	closed bool
	wg     sync.WaitGroup
}

type tickerSub struct {
	owner    *Ticker
	canceled atomic.Bool
	done     chan struct{}
	once     sync.Once
}

// NewTicker creates a ticker firing frameRate times per second.
// A non-positive rate falls back to DefaultFrameRate.
func NewTicker(logger *slog.Logger, frameRate int) *Ticker {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Ticker{
		logger:   logger.With(slog.String("component", "ticker")),
		interval: time.Second / time.Duration(frameRate),
		subs:     make(map[*tickerSub]struct{}),
	}
}

// Interval returns the time between ticks.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Subscribe implements ports.FrameScheduler.
// Subscribing to a closed ticker returns an already canceled subscription.
func (t *Ticker) Subscribe(fn func()) ports.Subscription {
	sub := &tickerSub{owner: t, done: make(chan struct{})}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		sub.once.Do(func() {
			sub.canceled.Store(true)
			close(sub.done)
		})
		return sub
	}

	t.subs[sub] = struct{}{}
	t.wg.Add(1)
	go t.run(sub, fn)

	t.logger.Debug("subscription started", slog.Duration("interval", t.interval))
	return sub
}

func (t *Ticker) run(sub *tickerSub, fn func()) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if sub.canceled.Load() {
				return
			}
			fn()
		case <-sub.done:
			return
		}
	}
}

// Close cancels every subscription and waits for the tick goroutines to exit.
// Must not be called from inside a tick callback.
func (t *Ticker) Close() {
	t.mu.Lock()
	t.closed = true
	subs := make([]*tickerSub, 0, len(t.subs))
	for sub := range t.subs {
		subs = append(subs, sub)
	}
	t.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
	t.wg.Wait()
}

// Cancel implements ports.Subscription.
// It is safe to call from inside the subscription's own callback.
func (s *tickerSub) Cancel() {
	s.once.Do(func() {
		s.canceled.Store(true)
		close(s.done)

		s.owner.mu.Lock()
		delete(s.owner.subs, s)
		s.owner.mu.Unlock()
	})
}

// Verify interface implementation at compile time.
var _ ports.FrameScheduler = (*Ticker)(nil)
