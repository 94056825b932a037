package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ChangeSource identifies what triggered a change notification.
type ChangeSource string

const (
	SourceInitialLoad ChangeSource = "initial_load"
	SourceLocalWrite  ChangeSource = "local_write"
	SourceRemoteWrite ChangeSource = "remote_write"
	SourceVisibility  ChangeSource = "visibility"
	SourcePoll        ChangeSource = "poll"
)

// ChangeEvent announces that stored data may have changed. Advisory:
// handlers must tolerate events for data that did not actually change.
type ChangeEvent struct {
	Source ChangeSource
	At     time.Time
}

// Handler processes one change event. Handlers must be idempotent.
type Handler func(context.Context, ChangeEvent)

// Notifier is a minimal in-process publish/subscribe channel for
// change events.
type Notifier struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, h)
}

// Publish delivers the event to every handler synchronously, in
// subscription order.
func (n *Notifier) Publish(ctx context.Context, ev ChangeEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	n.mu.RLock()
	handlers := n.handlers
	n.mu.RUnlock()

	slog.DebugContext(ctx, "Publishing change event", "source", ev.Source)
	for _, h := range handlers {
		h(ctx, ev)
	}
}
