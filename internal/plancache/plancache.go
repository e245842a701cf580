// Package plancache caches generated plans keyed by a hash of the
// profile, so identical requests within the TTL skip the AI calls.
package plancache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FitMentor/fitmentor-backend/models"
)

// Cache is what the plan handler needs from a cache backend.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// Key derives the cache key for a normalized profile.
func Key(req models.ProfileRequest) string {
	// json.Marshal on a struct has deterministic field order.
	raw, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Noop is the cache used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, []byte)        {}

// RedisCache stores serialized plans in Redis with a TTL.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisOption func(*RedisCache)

func WithPrefix(prefix string) RedisOption {
	return func(c *RedisCache) { c.prefix = prefix }
}

func WithTTL(d time.Duration) RedisOption {
	return func(c *RedisCache) { c.ttl = d }
}

func NewRedis(rdb *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		rdb:    rdb,
		prefix: "fitmentor:plan",
		ttl:    time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil || key == "" {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, c.prefix+":"+key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.rdb == nil || key == "" {
		return
	}
	// Cache failures are invisible to the client; the next request
	// regenerates the plan.
	_ = c.rdb.Set(ctx, c.prefix+":"+key, payload, c.ttl).Err()
}
