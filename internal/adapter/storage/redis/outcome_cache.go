package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// OutcomeCache implements ports.ReplayCache using Redis. It fronts the
// wallet_log table for replay lookups; the table stays authoritative,
// so every cache failure is recoverable by falling through to it.
type OutcomeCache struct {
	client *goredis.Client
	prefix string
}

// NewOutcomeCache creates a new Redis-backed replay cache.
func NewOutcomeCache(client *goredis.Client) *OutcomeCache {
	return &OutcomeCache{
		client: client,
		prefix: "outcome:",
	}
}

// Get retrieves a serialized log entry by transaction id.
// Returns nil, nil if the key does not exist.
func (c *OutcomeCache) Get(ctx context.Context, transactionID uuid.UUID) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+transactionID.String()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis outcome get: %w", err)
	}
	return val, nil
}

// Set stores a serialized log entry with TTL.
func (c *OutcomeCache) Set(ctx context.Context, transactionID uuid.UUID, entry []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+transactionID.String(), entry, ttl).Err(); err != nil {
		return fmt.Errorf("redis outcome set: %w", err)
	}
	return nil
}
