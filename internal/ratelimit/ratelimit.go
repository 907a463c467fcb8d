// internal/ratelimit/ratelimit.go
// Package ratelimit provides an explicit request limiter for model calls: a
// sliding per-minute window plus a daily quota with UTC day rollover. The
// limiter is a value handed to the client, not process state.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrDailyLimit is returned when the daily request quota is exhausted.
var ErrDailyLimit = errors.New("daily request limit reached")

// Limiter enforces a requests-per-minute window and a requests-per-day quota.
// A zero or negative limit disables that dimension.
type Limiter struct {
	mu        sync.Mutex
	perMinute int
	perDay    int
	recent    []time.Time
	dayKey    string
	usedToday int
	now       func() time.Time
}

// New returns a limiter allowing perMinute requests in any sliding minute and
// perDay requests per UTC day.
func New(perMinute, perDay int) *Limiter {
	return &Limiter{
		perMinute: perMinute,
		perDay:    perDay,
		now:       time.Now,
	}
}

// Wait blocks until a request slot is available, then consumes it. It returns
// ErrDailyLimit when the daily quota is spent and the context's error when
// cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		wait, err := l.tryAcquire()
		if err != nil {
			return err
		}
		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tryAcquire consumes a slot if one is free, or reports how long to wait for
// the sliding window to open.
func (l *Limiter) tryAcquire() (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.rollover(now)
	l.prune(now)

	if l.perDay > 0 && l.usedToday >= l.perDay {
		return 0, ErrDailyLimit
	}
	if l.perMinute > 0 && len(l.recent) >= l.perMinute {
		return l.recent[0].Add(time.Minute).Sub(now), nil
	}

	l.recent = append(l.recent, now)
	l.usedToday++
	return 0, nil
}

// RemainingToday reports how many requests are left in the daily quota; a
// negative value means the quota is unlimited.
func (l *Limiter) RemainingToday() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.perDay <= 0 {
		return -1
	}
	l.rollover(l.now())
	remaining := l.perDay - l.usedToday
	if remaining < 0 {
		return 0
	}
	return remaining
}

// rollover resets the daily counter when the UTC date changes.
func (l *Limiter) rollover(now time.Time) {
	key := now.UTC().Format("2006-01-02")
	if key != l.dayKey {
		l.dayKey = key
		l.usedToday = 0
	}
}

// prune drops window entries older than one minute.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-time.Minute)
	idx := 0
	for idx < len(l.recent) && !l.recent[idx].After(cutoff) {
		idx++
	}
	l.recent = l.recent[idx:]
}
