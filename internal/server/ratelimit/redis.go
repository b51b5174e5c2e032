package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// counter is the subset of *redis.Client the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisLimiter shares windows between server instances. Each key is a counter
// that expires when its window ends.
type RedisLimiter struct {
	client counter
	prefix string
	max    int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, max int, w time.Duration) *RedisLimiter {
	return newRedisLimiter(client, max, w)
}

func newRedisLimiter(client counter, max int, w time.Duration) *RedisLimiter {
	max, w = normalize(max, w)
	return &RedisLimiter{
		client: client,
		prefix: "ratelimit:auth:",
		max:    max,
		window: w,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	k := l.prefix + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, oops.Code("RATELIMIT_UNAVAILABLE").With("op", "incr").Wrap(err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return Result{}, oops.Code("RATELIMIT_UNAVAILABLE").With("op", "expire").Wrap(err)
		}
		return result(count, l.max, l.now().Add(l.window)), nil
	}

	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil {
		return Result{}, oops.Code("RATELIMIT_UNAVAILABLE").With("op", "pttl").Wrap(err)
	}
	// the first hit may have died between INCR and EXPIRE
	if ttl < 0 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return Result{}, oops.Code("RATELIMIT_UNAVAILABLE").With("op", "expire").Wrap(err)
		}
		ttl = l.window
	}

	return result(count, l.max, l.now().Add(ttl)), nil
}
