package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManual_TickOrder(t *testing.T) {
	m := NewManual()

	var order []string
	m.Subscribe(func() { order = append(order, "a") })
	m.Subscribe(func() { order = append(order, "b") })

	m.Tick()
	m.Advance(2)

	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, order)
	assert.Equal(t, 2, m.Subscribers())
}

func TestManual_Cancel(t *testing.T) {
	m := NewManual()

	var calls int
	sub := m.Subscribe(func() { calls++ })
	m.Tick()

	sub.Cancel()
	sub.Cancel()
	m.Advance(3)

	assert.Equal(t, 1, calls)
	assert.Zero(t, m.Subscribers())
}

func TestManual_CancelDuringTick(t *testing.T) {
	m := NewManual()

	var later int
	var second interface{ Cancel() }
	m.Subscribe(func() { second.Cancel() })
	second = m.Subscribe(func() { later++ })

	m.Tick()

	assert.Zero(t, later, "a subscription canceled earlier in the same tick is skipped")
	assert.Equal(t, 1, m.Subscribers())
}

func TestManual_SubscribeDuringTick(t *testing.T) {
	m := NewManual()

	var added int
	m.Subscribe(func() {
		if added == 0 {
			m.Subscribe(func() { added++ })
		}
	})

	m.Tick()
	assert.Zero(t, added, "new subscriptions start on the next tick")

	m.Tick()
	assert.Equal(t, 1, added)
}
