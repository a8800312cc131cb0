package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = 30 * time.Second

// SubmitGuard holds a short-lived Redis key while a form write is outstanding.
// Key format: submit:<form>:<subject>
// The TTL frees the key when a process dies mid-request.
type SubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitGuard creates a SubmitGuard wrapping the given Redis client.
func NewSubmitGuard(client *redis.Client, ttl time.Duration) *SubmitGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &SubmitGuard{client: client, ttl: ttl}
}

// Acquire reports whether the caller now holds key.
func (g *SubmitGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard acquire: %w", err)
	}
	return ok, nil
}

// Release drops key so the next submission may proceed.
func (g *SubmitGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("submit guard release: %w", err)
	}
	return nil
}

func (g *SubmitGuard) key(key string) string {
	return "submit:" + key
}
