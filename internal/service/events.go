package service

import (
	"log"
	"sync"
)

// Event names published by the services.
const (
	EventBookingCreated      = "booking_created"
	EventStatusUpdated       = "status_updated"
	EventBookingCleared      = "booking_cleared"
	EventAssessmentCompleted = "assessment_completed"
	EventEmergencyActivated  = "emergency_activated"
)

// Handler receives a published event payload.
type Handler func(event string, payload any)

// EventBus is a synchronous, ordered, in-process pub/sub. Listeners are
// invoked in registration order; a panicking listener does not prevent the
// remaining listeners from running.
type EventBus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string][]subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewEventBus creates a new EventBus.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]subscription),
	}
}

// Subscribe registers a handler for the given event name and returns an
// unsubscribe function.
func (b *EventBus) Subscribe(event string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[event] = append(b.handlers[event], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[event]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[event] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payload to every handler registered for event, in
// registration order, on the caller's goroutine.
func (b *EventBus) Publish(event string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.handlers[event]))
	copy(subs, b.handlers[event])
	b.mu.Unlock()

	for _, sub := range subs {
		invoke(event, payload, sub.fn)
	}
}

func invoke(event string, payload any, fn Handler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event listener panic: event=%s: %v", event, r)
		}
	}()
	fn(event, payload)
}
