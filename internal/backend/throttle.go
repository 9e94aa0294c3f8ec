package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces registry loads at least interval apart, so a burst of
// refresh requests cannot hammer the database.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval < 0 {
		interval = 0
	}
	return &throttle{interval: interval}
}

// wait blocks until the next load may start or ctx is done.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.interval == 0 {
		return ctx.Err()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if delay := t.interval - time.Since(t.last); delay > 0 && !t.last.IsZero() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	t.last = time.Now()
	return nil
}
