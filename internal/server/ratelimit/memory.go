package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int64
	start time.Time
}

// MemoryLimiter keeps windows in process memory. Expired windows are
// dropped lazily, at most once per window length.
type MemoryLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	windows   map[string]*window
	nextSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(max int, w time.Duration) *MemoryLimiter {
	max, w = normalize(max, w)
	return &MemoryLimiter{
		max:     max,
		window:  w,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.window)) {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++

	return result(w.count, l.max, w.start.Add(l.window)), nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for k, w := range l.windows {
		if !now.Before(w.start.Add(l.window)) {
			delete(l.windows, k)
		}
	}
	l.nextSweep = now.Add(l.window)
}

func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
