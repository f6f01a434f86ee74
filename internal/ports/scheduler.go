// Package ports define the frame scheduling abstraction.
package ports

// FrameScheduler delivers one callback per display refresh.
//
// Implementations invoke each subscribed callback at most once per tick and
// never run two ticks of the same subscription concurrently.
type FrameScheduler interface {
	// Subscribe registers fn to be called on every tick until the returned
	// subscription is canceled.
	Subscribe(fn func()) Subscription
}

// Subscription is a handle to a registered callback.
type Subscription interface {
	// Cancel revokes the subscription. No tick that starts after Cancel
	// returns will call the callback. Calling Cancel more than once is a no-op.
	Cancel()
}

// SubscriptionFunc adapts a plain function to the Subscription interface.
type SubscriptionFunc func()

// Cancel calls f.
func (f SubscriptionFunc) Cancel() {
	f()
}
