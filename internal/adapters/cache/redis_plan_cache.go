package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"mail-route-service/internal/domain"
	"mail-route-service/internal/platform/obs"
)

// RedisPlanCache stores computed plans as JSON under their input fingerprint.
// Plans are deterministic for a key, so entries only expire to bound memory.
type RedisPlanCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPlanCache(rdb *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{rdb: rdb, ttl: ttl}
}

// NewRedisPlanCacheFromURL connects using a redis:// URL.
func NewRedisPlanCacheFromURL(url string, ttl time.Duration) (*RedisPlanCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("plan cache: parse redis url: %w", err)
	}
	return NewRedisPlanCache(redis.NewClient(opt), ttl), nil
}

// Fetch a cached plan. A miss is not an error.
func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ *domain.PlanResult, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.rdb == nil {
		return nil, false, errors.New("plan cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	var plan domain.PlanResult
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: decode: %w", key, err)
	}
	return &plan, true, nil
}

// Store a plan under key, replacing any previous entry.
func (c *RedisPlanCache) Put(ctx context.Context, key string, plan *domain.PlanResult) error {
	if c.rdb == nil {
		return errors.New("plan cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert plan cache: key must not be empty")
	}
	if plan == nil {
		return errors.New("insert plan cache: plan must be non-nil")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert plan cache key=%q: encode: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}
	return nil
}

func (c *RedisPlanCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
