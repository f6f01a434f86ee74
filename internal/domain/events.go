// Package domain defines events for the event-driven architecture.
// Hosts, the page glue and the renderer talk through these events instead of callbacks.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Host events (inputs to the renderer)
	EventSectionVisible EventType = "section.visible"
	EventSectionHidden  EventType = "section.hidden"
	EventSurfaceResized EventType = "surface.resized"

	// Renderer events
	EventRendererActivated EventType = "renderer.activated"
	EventRendererResized   EventType = "renderer.resized"
	EventRendererStopped   EventType = "renderer.stopped"
	EventFrameRendered     EventType = "frame.rendered"

	// Settings events
	EventSettingsChanged EventType = "settings.changed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SectionVisibleEvent is published when the container holding the surface becomes visible.
type SectionVisibleEvent struct {
	baseEvent
}

// Type returns the event type.
func (e SectionVisibleEvent) Type() EventType {
	return EventSectionVisible
}

// NewSectionVisibleEvent creates a new SectionVisibleEvent.
func NewSectionVisibleEvent() SectionVisibleEvent {
	return SectionVisibleEvent{baseEvent: newBaseEvent()}
}

// SectionHiddenEvent is published when the container is torn down or navigated away from.
type SectionHiddenEvent struct {
	baseEvent
}

// Type returns the event type.
func (e SectionHiddenEvent) Type() EventType {
	return EventSectionHidden
}

// NewSectionHiddenEvent creates a new SectionHiddenEvent.
func NewSectionHiddenEvent() SectionHiddenEvent {
	return SectionHiddenEvent{baseEvent: newBaseEvent()}
}

// SurfaceResizedEvent asks the renderer to re-measure its surface.
// It carries no payload: the renderer reads the new size from the surface itself.
type SurfaceResizedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e SurfaceResizedEvent) Type() EventType {
	return EventSurfaceResized
}

// NewSurfaceResizedEvent creates a new SurfaceResizedEvent.
func NewSurfaceResizedEvent() SurfaceResizedEvent {
	return SurfaceResizedEvent{baseEvent: newBaseEvent()}
}

// RendererActivatedEvent is published when a renderer enters the running state.
type RendererActivatedEvent struct {
	baseEvent
	Variant    Variant
	Units      int
	Dimensions Dimensions
}

// Type returns the event type.
func (e RendererActivatedEvent) Type() EventType {
	return EventRendererActivated
}

// NewRendererActivatedEvent creates a new RendererActivatedEvent.
func NewRendererActivatedEvent(variant Variant, units int, dims Dimensions) RendererActivatedEvent {
	return RendererActivatedEvent{
		baseEvent:  newBaseEvent(),
		Variant:    variant,
		Units:      units,
		Dimensions: dims,
	}
}

// RendererResizedEvent is published when a resize changed the measured dimensions.
type RendererResizedEvent struct {
	baseEvent
	Previous   Dimensions
	Dimensions Dimensions
}

// Type returns the event type.
func (e RendererResizedEvent) Type() EventType {
	return EventRendererResized
}

// NewRendererResizedEvent creates a new RendererResizedEvent.
func NewRendererResizedEvent(previous, current Dimensions) RendererResizedEvent {
	return RendererResizedEvent{
		baseEvent:  newBaseEvent(),
		Previous:   previous,
		Dimensions: current,
	}
}

// RendererStoppedEvent is published once when a running renderer stops.
type RendererStoppedEvent struct {
	baseEvent
	Frames uint64
}

// Type returns the event type.
func (e RendererStoppedEvent) Type() EventType {
	return EventRendererStopped
}

// NewRendererStoppedEvent creates a new RendererStoppedEvent.
func NewRendererStoppedEvent(frames uint64) RendererStoppedEvent {
	return RendererStoppedEvent{
		baseEvent: newBaseEvent(),
		Frames:    frames,
	}
}

// FrameRenderedEvent is published after every frame that reached the surface.
// Hosts use it to present the finished frame.
type FrameRenderedEvent struct {
	baseEvent
	Frame uint64
	Time  float64
}

// Type returns the event type.
func (e FrameRenderedEvent) Type() EventType {
	return EventFrameRendered
}

// NewFrameRenderedEvent creates a new FrameRenderedEvent.
func NewFrameRenderedEvent(frame uint64, t float64) FrameRenderedEvent {
	return FrameRenderedEvent{
		baseEvent: newBaseEvent(),
		Frame:     frame,
		Time:      t,
	}
}

// SettingsChangedEvent is published when persisted renderer settings change.
type SettingsChangedEvent struct {
	baseEvent
	Key   string
	Value any
}

// Type returns the event type.
func (e SettingsChangedEvent) Type() EventType {
	return EventSettingsChanged
}

// NewSettingsChangedEvent creates a new SettingsChangedEvent.
func NewSettingsChangedEvent(key string, value any) SettingsChangedEvent {
	return SettingsChangedEvent{
		baseEvent: newBaseEvent(),
		Key:       key,
		Value:     value,
	}
}
