package fyne

import (
	"sync/atomic"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
)

// AnimationScheduler ticks once per display refresh using a Fyne animation
// that repeats forever. Callbacks run on the Fyne goroutine.
type AnimationScheduler struct{}

// NewAnimationScheduler creates a display-synchronized scheduler.
func NewAnimationScheduler() *AnimationScheduler {
	return &AnimationScheduler{}
}

// Subscribe implements ports.FrameScheduler.
func (s *AnimationScheduler) Subscribe(fn func()) ports.Subscription {
	var canceled atomic.Bool

	anim := fyneapp.NewAnimation(time.Second, func(float32) {
		if !canceled.Load() {
			fn()
		}
	})
	anim.Curve = fyneapp.AnimationLinear
	anim.RepeatCount = fyneapp.AnimationRepeatForever
	anim.Start()

	return ports.SubscriptionFunc(func() {
		if canceled.CompareAndSwap(false, true) {
			anim.Stop()
		}
	})
}

// Verify interface implementation at compile time.
var _ ports.FrameScheduler = (*AnimationScheduler)(nil)
