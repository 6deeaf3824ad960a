package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis counts requests in a shared Redis so the limit holds across
// processes. Errors fail open: an unreachable Redis must not take the
// site down with it.
type Redis struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

func NewRedis(addr string, max int, window time.Duration, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  300 * time.Millisecond,
		WriteTimeout: 300 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not reachable, rate limiting will fail open", zap.Error(err))
	}

	return &Redis{
		client: client,
		max:    max,
		window: window,
		logger: logger,
	}
}

func (r *Redis) Consume(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	redisKey := "ratelimit:" + key

	n, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		r.logger.Warn("rate limit INCR failed", zap.Error(err))
		return true
	}
	if n == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			r.logger.Warn("rate limit EXPIRE failed", zap.Error(err))
		}
	}

	return n <= int64(r.max)
}
