package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// EventType mirrors row-change kinds on the watched tables.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Table names covered by the change feed.
const (
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

// Event is one row change. OrderID and TableNumber let the dashboard show
// "new order at table N" toasts without an extra fetch; the dashboard still
// re-queries for the data itself.
type Event struct {
	Table       string    `json:"table"`
	Type        EventType `json:"type"`
	OrderID     uint      `json:"order_id"`
	TableNumber int       `json:"table_number,omitempty"`
}

// subscriberBuffer bounds how far a slow consumer may lag before events are
// dropped. Dropping is fine: consumers re-fetch full state on any event.
const subscriberBuffer = 16

// Hub is an in-process fan-out of table change events. Writers never block
// on subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Event)}
}

// Subscribe registers a listener and returns its id and event channel. The
// caller must Unsubscribe when done or the channel leaks.
func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Emit delivers the event to every live subscriber. A subscriber with a full
// buffer misses the event rather than blocking the writer.
func (h *Hub) Emit(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports the number of live listeners.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Default is the hub shared by the HTTP handlers.
var Default = NewHub()
