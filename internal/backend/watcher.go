package backend

import (
	"context"
	"sync"
	"time"

	"github.com/solterra/towny-catalog/internal/towny"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindRegistry Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindRegistry:
		return "registry"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Loader produces a fresh registry snapshot.
type Loader interface {
	Load(ctx context.Context) (*towny.Snapshot, error)
}

// Watcher reloads the registry at a fixed interval and publishes events.
type Watcher struct {
	loader   Loader
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	refresh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher that loads a snapshot immediately and then
// every interval.
func NewWatcher(loader Loader, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		loader:   loader,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		refresh:  make(chan struct{}, 1),
	}

	w.startRegistryPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Refresh asks for a load ahead of the next tick. Requests made while one is
// already pending are coalesced.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. The poller exits after its current load
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
// Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startRegistryPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindRegistry, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		snap, err := w.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		return snap, nil
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-tick:
			if !emit() {
				return
			}
		case <-w.refresh:
			if !emit() {
				return
			}
		}
	}
}
