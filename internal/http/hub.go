package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event is the payload pushed to connected dashboard clients.
type Event struct {
	Name      string    `json:"event"`
	UserID    int64     `json:"userId"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// EventHub fans the advisory dataUpdated broadcast out to every
// connected event-stream client. Delivery is best effort: a slow
// client's buffer fills and further events for it are dropped.
type EventHub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{subscribers: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel removes it.
func (h *EventHub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// DataUpdated implements the broadcast contract used by the record
// service.
func (h *EventHub) DataUpdated(ctx context.Context, userID int64, source string) {
	ev := Event{Name: "dataUpdated", UserID: userID, Source: source, Timestamp: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			slog.DebugContext(ctx, "Dropping event for slow subscriber", "user_id", userID)
		}
	}
}

func (h *EventHub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (ev Event) marshal() []byte {
	b, err := json.Marshal(ev)
	if err != nil {
		return []byte(`{"event":"dataUpdated"}`)
	}
	return b
}
