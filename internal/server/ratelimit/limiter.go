// Package ratelimit implements the fixed-window limiter placed in front of
// the signup and login endpoints.
package ratelimit

import (
	"context"
	"time"
)

// Defaults match the public contract: 10 attempts per 15 minutes per address.
const (
	DefaultMax    = 10
	DefaultWindow = 15 * time.Minute
)

// Result describes the state of a key's window after one hit.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func result(count int64, max int, resetAt time.Time) Result {
	remaining := max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(max),
		Limit:     max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

func normalize(max int, window time.Duration) (int, time.Duration) {
	if max <= 0 {
		max = DefaultMax
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return max, window
}
