// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// RegisteredEvent fires when a host panel first registers.
	RegisteredEvent EventType = "registered"
	// ShownEvent fires when a host panel becomes visible.
	ShownEvent EventType = "shown"
	// HiddenEvent fires when a host panel stops being visible.
	HiddenEvent EventType = "hidden"
	// ChangedEvent fires when a watched resource mutates.
	ChangedEvent EventType = "changed"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
