package event

import "testing"

func TestPublishRunsHandlersInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("glyph:changed", func(Event) { order = append(order, "first") })
	bus.Subscribe("glyph:changed", func(Event) { order = append(order, "second") })
	bus.Subscribe("glyph:changed", func(Event) { order = append(order, "third") })

	bus.Publish("glyph:changed", nil)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %d handler calls, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPublishIsSynchronous(t *testing.T) {
	bus := NewBus()

	ran := false
	bus.Subscribe("points:moved", func(ev Event) {
		if ev.Name != "points:moved" {
			t.Errorf("event name = %q, want points:moved", ev.Name)
		}
		if ev.Payload != 42 {
			t.Errorf("payload = %v, want 42", ev.Payload)
		}
		ran = true
	})

	bus.Publish("points:moved", 42)
	if !ran {
		t.Fatal("handler did not run before Publish returned")
	}
}

func TestPublishUnknownEventIsNoop(t *testing.T) {
	bus := NewBus()
	bus.Publish("nobody:listens", nil)
}

func TestUnsubscribeRemovesOnlyThatSubscription(t *testing.T) {
	bus := NewBus()

	var calls []string
	// Two handlers with identical behaviour; only the subscription value
	// distinguishes them.
	subA := bus.Subscribe("points:added", func(Event) { calls = append(calls, "a") })
	bus.Subscribe("points:added", func(Event) { calls = append(calls, "b") })

	bus.Unsubscribe(subA)
	bus.Publish("points:added", nil)

	if len(calls) != 1 || calls[0] != "b" {
		t.Fatalf("calls after unsubscribe = %v, want [b]", calls)
	}
}

func TestUnsubscribeNilAndUnknownAreIgnored(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("glyph:changed", func(Event) {})

	bus.Unsubscribe(nil)
	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub) // second removal of the same subscription

	count := 0
	bus.Subscribe("glyph:changed", func(Event) { count++ })
	bus.Publish("glyph:changed", nil)
	if count != 1 {
		t.Fatalf("remaining handler ran %d times, want 1", count)
	}
}

func TestHandlerMayUnsubscribeItselfDuringDispatch(t *testing.T) {
	bus := NewBus()

	var calls []string
	var once *Subscription
	once = bus.Subscribe("glyph:changed", func(Event) {
		calls = append(calls, "once")
		bus.Unsubscribe(once)
	})
	bus.Subscribe("glyph:changed", func(Event) { calls = append(calls, "after") })

	bus.Publish("glyph:changed", nil)
	bus.Publish("glyph:changed", nil)

	want := []string{"once", "after", "after"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}
