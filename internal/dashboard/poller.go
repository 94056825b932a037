package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is the fallback refresh cadence when no change
// notification arrives.
const DefaultPollInterval = 4 * time.Second

// Poller re-publishes a poll event on a fixed interval so the pipeline
// catches writes that never emitted a notification. It can be paused,
// e.g. while an editing dialog is open.
type Poller struct {
	notifier *Notifier
	interval time.Duration
	paused   atomic.Bool
	started  atomic.Bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewPoller(notifier *Notifier, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		notifier: notifier,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling in a background goroutine until Stop is called
// or the context is cancelled. Calling Start again is a no-op.
func (p *Poller) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Poller started", "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			if p.paused.Load() {
				continue
			}
			p.notifier.Publish(ctx, ChangeEvent{Source: SourcePoll})
		}
	}
}

// Pause suppresses ticks without stopping the ticker.
func (p *Poller) Pause()  { p.paused.Store(true) }
func (p *Poller) Resume() { p.paused.Store(false) }

func (p *Poller) Paused() bool { return p.paused.Load() }

// Stop halts polling and waits for the loop to exit. Stopping a poller
// that never started returns immediately.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	if !p.started.Load() {
		return
	}
	<-p.done
}
