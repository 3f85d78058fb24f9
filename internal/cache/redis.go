// Package cache memoizes processing results in Redis, keyed by a digest of
// the raw dataset bytes so identical uploads never reprocess.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/veridata-labs/airlens-cli/internal/pipeline"
)

type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache connects to Redis and verifies the connection.
func NewResultCache(ctx context.Context, addr string, ttl time.Duration) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &ResultCache{client: client, ttl: ttl}, nil
}

// Key digests raw dataset bytes into a cache key.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return "result:" + hex.EncodeToString(sum[:])
}

// Get returns the cached result for a key, or nil on a miss. Corrupt entries
// count as misses.
func (c *ResultCache) Get(ctx context.Context, key string) (*pipeline.ProcessedResult, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var res pipeline.ProcessedResult
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return nil, nil
	}
	return &res, nil
}

func (c *ResultCache) Set(ctx context.Context, key string, res *pipeline.ProcessedResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *ResultCache) Close() error {
	return c.client.Close()
}
