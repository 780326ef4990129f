package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter enforces a per-user token budget. Usage is a plain counter
// under usage:<userID>; the budget never resets on its own, an operator
// clears or expires the keys out of band.
type RedisLimiter struct {
	client *redis.Client
	limit  int
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit}
}

func (r *RedisLimiter) CheckLimit(ctx context.Context, userID string) (bool, error) {
	val, err := r.client.Get(ctx, "usage:"+userID).Result()
	if err == redis.Nil {
		return true, nil // no usage yet
	}
	if err != nil {
		return false, fmt.Errorf("usage lookup failed: %w", err)
	}
	usage, err := strconv.Atoi(val)
	if err != nil {
		return false, fmt.Errorf("corrupt usage counter for %s: %w", userID, err)
	}
	return usage < r.limit, nil
}

func (r *RedisLimiter) Increment(ctx context.Context, userID string, tokens int) error {
	return r.client.IncrBy(ctx, "usage:"+userID, int64(tokens)).Err()
}
