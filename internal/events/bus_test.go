package events

import (
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan ButtonPressedEvent, 1)

	unsub := bus.Subscribe(func(e ButtonPressedEvent) {
		received <- e
	})
	defer unsub()

	bus.Publish(ButtonPressedEvent{
		Origin:    "gpio",
		Timestamp: time.Now().Format(time.RFC3339),
	})

	select {
	case got := <-received:
		if got.Origin != "gpio" {
			t.Errorf("Expected origin gpio, got %s", got.Origin)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestBus_TypeIsolation(t *testing.T) {
	bus := New()
	presses := make(chan ButtonPressedEvent, 1)

	unsub := bus.Subscribe(func(e ButtonPressedEvent) {
		presses <- e
	})
	defer unsub()

	// A different event type must not reach the button subscriber.
	bus.Publish(StatusUpdatedEvent{Mode: "Weather"})

	select {
	case e := <-presses:
		t.Errorf("Button subscriber received unrelated event: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan ModeChangedEvent, 1)

	unsub := bus.Subscribe(func(e ModeChangedEvent) {
		received <- e
	})
	unsub()

	bus.Publish(ModeChangedEvent{Mode: "Weather", Index: 1})

	select {
	case e := <-received:
		t.Errorf("Received event after unsubscribe: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 2)

	unsub := SubscribeToChannel[StatusUpdatedEvent](bus, ch)
	defer unsub()

	bus.Publish(StatusUpdatedEvent{Mode: "System health", Label: "System health"})

	select {
	case got := <-ch:
		ev, ok := got.(StatusUpdatedEvent)
		if !ok {
			t.Fatalf("Expected StatusUpdatedEvent, got %T", got)
		}
		if ev.Mode != "System health" {
			t.Errorf("Expected mode 'System health', got %q", ev.Mode)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for channel event")
	}
}
