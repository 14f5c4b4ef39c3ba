package services

import (
	"testing"
	"time"
)

func TestEventHub_NewEventHub(t *testing.T) {
	hub := NewEventHub()
	if hub == nil {
		t.Fatal("NewEventHub should not return nil")
	}
	if hub.clients == nil {
		t.Error("clients map should be initialized")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("new hub should have 0 clients, got %d", hub.ClientCount())
	}
}

func TestEventHub_Subscribe(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client1")
	if ch == nil {
		t.Error("Subscribe should return a channel")
	}
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client, got %d", hub.ClientCount())
	}

	ch2 := hub.Subscribe("client2")
	if ch2 == nil {
		t.Error("Subscribe should return a channel")
	}
	if hub.ClientCount() != 2 {
		t.Errorf("expected 2 clients, got %d", hub.ClientCount())
	}
}

func TestEventHub_Unsubscribe(t *testing.T) {
	hub := NewEventHub()

	hub.Subscribe("client1")
	hub.Subscribe("client2")

	hub.Unsubscribe("client1")
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client after unsubscribe, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("nonexistent")
	if hub.ClientCount() != 1 {
		t.Errorf("unsubscribing nonexistent should not affect count, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("client2")
	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestEventHub_Publish(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client1")

	hub.Publish(ChangeEvent{
		Category: "spacing",
		Action:   ActionUpdate,
		Actor:    "alice",
	})

	select {
	case received := <-ch:
		if received.Category != "spacing" {
			t.Errorf("Category = %q, expected %q", received.Category, "spacing")
		}
		if received.Action != ActionUpdate {
			t.Errorf("Action = %q, expected %q", received.Action, ActionUpdate)
		}
		if received.Actor != "alice" {
			t.Errorf("Actor = %q, expected %q", received.Actor, "alice")
		}
		if received.At.IsZero() {
			t.Error("Publish should stamp the event time")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for event")
	}
}

func TestEventHub_PublishMultipleClients(t *testing.T) {
	hub := NewEventHub()

	ch1 := hub.Subscribe("client1")
	ch2 := hub.Subscribe("client2")

	hub.Publish(ChangeEvent{Category: "colorScheme", Action: ActionAdd})

	for i, ch := range []<-chan ChangeEvent{ch1, ch2} {
		select {
		case received := <-ch:
			if received.Category != "colorScheme" {
				t.Errorf("client%d: Category = %q, expected %q", i+1, received.Category, "colorScheme")
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client%d: timed out waiting for event", i+1)
		}
	}
}

func TestEventHub_NonBlockingPublish(t *testing.T) {
	hub := NewEventHub()

	hub.Subscribe("slow_client")

	// Slow client never drains; publishing past the buffer must not block
	for i := 0; i < 200; i++ {
		hub.Publish(ChangeEvent{Category: "shadow", Action: ActionUpdate})
	}
}

func TestEventHub_Forwarder(t *testing.T) {
	hub := NewEventHub()

	var forwarded []ChangeEvent
	hub.SetForwarder(func(e ChangeEvent) {
		forwarded = append(forwarded, e)
	})

	hub.Publish(ChangeEvent{Category: "animation", Action: ActionRemove})
	hub.Publish(ChangeEvent{Category: "typography", Action: ActionSetActive})

	if len(forwarded) != 2 {
		t.Fatalf("expected 2 forwarded events, got %d", len(forwarded))
	}
	if forwarded[0].Category != "animation" {
		t.Errorf("first forwarded Category = %q, expected %q", forwarded[0].Category, "animation")
	}
	if forwarded[1].Action != ActionSetActive {
		t.Errorf("second forwarded Action = %q, expected %q", forwarded[1].Action, ActionSetActive)
	}
}

func TestGetEventHub_Singleton(t *testing.T) {
	hub1 := GetEventHub()
	hub2 := GetEventHub()

	if hub1 != hub2 {
		t.Error("GetEventHub should return the same instance")
	}
}
