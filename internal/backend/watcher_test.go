package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/solterra/towny-catalog/internal/towny"
)

type fakeLoader struct {
	calls atomic.Int32
	err   error
}

func (f *fakeLoader) Load(ctx context.Context) (*towny.Snapshot, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	snap := towny.NewSnapshot()
	for i := int32(0); i < n; i++ {
		snap.AddTown(&towny.Town{Name: "T"})
	}
	return snap, nil
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestWatcherEmitsInitialSnapshot(t *testing.T) {
	loader := &fakeLoader{}
	w := NewWatcher(loader, 0)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w)
	if evt.Kind != KindRegistry || evt.Err != nil {
		t.Fatalf("unexpected event %+v", evt)
	}
	snap, ok := evt.Data.(*towny.Snapshot)
	if !ok || len(snap.Towns()) != 1 {
		t.Fatalf("expected first snapshot, got %#v", evt.Data)
	}
}

func TestWatcherRefresh(t *testing.T) {
	loader := &fakeLoader{}
	w := NewWatcher(loader, 0)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	nextEvent(t, w)
	w.Refresh()
	evt := nextEvent(t, w)
	snap := evt.Data.(*towny.Snapshot)
	if len(snap.Towns()) != 2 {
		t.Fatalf("expected refreshed snapshot, got %d towns", len(snap.Towns()))
	}
}

func TestWatcherReportsErrors(t *testing.T) {
	boom := errors.New("locked")
	w := NewWatcher(&fakeLoader{err: boom}, 0)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w)
	if !errors.Is(evt.Err, boom) || evt.Data != nil {
		t.Fatalf("expected load error, got %+v", evt)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(&fakeLoader{}, 10*time.Millisecond)
	nextEvent(t, w)
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if err := th.wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := th.wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected second call to wait, took %s", elapsed)
	}
	var nilThrottle *throttle
	if err := nilThrottle.wait(ctx); err != nil {
		t.Fatalf("expected nil throttle to pass, got %v", err)
	}
}

func TestThrottleHonoursCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	if err := th.wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := th.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
