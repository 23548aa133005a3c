package service

import (
	"testing"
)

func TestEventBus_DeliversInRegistrationOrder(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe("test", func(event string, payload any) {
			order = append(order, i)
		})
	}

	bus.Publish("test", nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected delivery order [1 2 3], got %v", order)
	}
}

func TestEventBus_PayloadAndEventName(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()

	var gotEvent string
	var gotPayload any
	bus.Subscribe(EventBookingCreated, func(event string, payload any) {
		gotEvent = event
		gotPayload = payload
	})

	bus.Publish(EventBookingCreated, "payload-1")

	if gotEvent != EventBookingCreated {
		t.Errorf("event = %q, want %q", gotEvent, EventBookingCreated)
	}
	if gotPayload != "payload-1" {
		t.Errorf("payload = %v, want payload-1", gotPayload)
	}
}

func TestEventBus_UnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()

	var first, second int
	unsubscribe := bus.Subscribe("test", func(event string, payload any) {
		first++
	})
	bus.Subscribe("test", func(event string, payload any) {
		second++
	})

	bus.Publish("test", nil)
	unsubscribe()
	bus.Publish("test", nil)

	if first != 1 {
		t.Errorf("unsubscribed handler invoked %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("remaining handler invoked %d times, want 2", second)
	}
}

func TestEventBus_UnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()

	unsubscribe := bus.Subscribe("test", func(event string, payload any) {})
	unsubscribe()
	unsubscribe() // second call is a no-op

	bus.Publish("test", nil)
}

func TestEventBus_PanickingListenerDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()

	var delivered int
	bus.Subscribe("test", func(event string, payload any) {
		panic("listener bug")
	})
	bus.Subscribe("test", func(event string, payload any) {
		delivered++
	})

	bus.Publish("test", nil)

	if delivered != 1 {
		t.Errorf("listener after panic invoked %d times, want 1", delivered)
	}
}

func TestEventBus_NoListenersIsANoOp(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	bus.Publish("nobody-listening", 42)
}
