package realtime

import (
	"testing"
	"time"
)

func TestHub_DeliversToSubscriber(t *testing.T) {
	h := NewHub()
	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)

	h.Emit(Event{Table: TableOrders, Type: EventInsert, OrderID: 1, TableNumber: 5})

	select {
	case ev := <-ch:
		if ev.Type != EventInsert || ev.OrderID != 1 || ev.TableNumber != 5 {
			t.Errorf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHub_OneEventPerEmit(t *testing.T) {
	h := NewHub()
	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)

	h.Emit(Event{Table: TableOrders, Type: EventUpdate, OrderID: 1})
	h.Emit(Event{Table: TableOrders, Type: EventUpdate, OrderID: 1})

	if got := len(ch); got != 2 {
		t.Errorf("expected exactly 2 buffered events, got %d", got)
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	id, ch := h.Subscribe()
	h.Unsubscribe(id)

	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	if h.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", h.SubscriberCount())
	}

	// Emitting with no subscribers must not panic or block.
	h.Emit(Event{Table: TableOrders, Type: EventDelete, OrderID: 2})
}

func TestHub_SlowSubscriberDoesNotBlockEmit(t *testing.T) {
	h := NewHub()
	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)

	// Never drained: fill the buffer and keep emitting.
	for i := 0; i < subscriberBuffer*2; i++ {
		h.Emit(Event{Table: TableOrderItems, Type: EventInsert, OrderID: uint(i)})
	}

	if got := len(ch); got != subscriberBuffer {
		t.Errorf("expected buffer capped at %d events, got %d", subscriberBuffer, got)
	}
}

func TestHub_FanOut(t *testing.T) {
	h := NewHub()
	id1, ch1 := h.Subscribe()
	id2, ch2 := h.Subscribe()
	defer h.Unsubscribe(id1)
	defer h.Unsubscribe(id2)

	h.Emit(Event{Table: TableOrders, Type: EventInsert, OrderID: 7})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.OrderID != 7 {
				t.Errorf("unexpected event: %+v", ev)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber missed the event")
		}
	}
}
