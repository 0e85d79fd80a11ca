// Package decoder provides decoder collaborators that turn external input
// into decode events at a bounded cadence.
package decoder

import (
	"context"
	"time"
)

// DefaultInterval is the minimum time between two decode events.
const DefaultInterval = 400 * time.Millisecond

// Event 一次解码得到的原始文本
// Event carries one decoded payload.
type Event struct {
	Text string
}

// Throttle enforces a minimum interval between decode attempts.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval < 0 {
		interval = 0
	}
	return &Throttle{interval: interval, now: time.Now}
}

// Remaining reports how long the next attempt still has to wait.
func (t *Throttle) Remaining() time.Duration {
	if t.last.IsZero() {
		return 0
	}
	wait := t.interval - t.now().Sub(t.last)
	if wait < 0 {
		return 0
	}
	return wait
}

// Wait blocks until an attempt is allowed, then marks it.
func (t *Throttle) Wait(ctx context.Context) error {
	if wait := t.Remaining(); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	t.last = t.now()
	return nil
}
