package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mail-route-service/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	c := NewRedisPlanCache(redis.NewClient(&redis.Options{Addr: m.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, m
}

func TestRedisPlanCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, m := newTestCache(t, time.Hour)

	plan := &domain.PlanResult{
		ID:            uuid.New(),
		Mode:          domain.ModeSingle,
		Grid:          domain.Grid{Width: 2, Height: 2},
		Policy:        domain.DefaultPolicy(),
		BudgetMinutes: 480,
		Centers:       []domain.Point{3},
		Routes:        []domain.RoutePlan{{Center: 3, Stops: domain.Route{1, 0, 2}, TotalDistance: 4, TotalMinutes: 69}},
		CreatedAt:     time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	_, found, err := c.Get(ctx, "plan:abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Put(ctx, "plan:abc", plan))
	assert.True(t, m.Exists("plan:abc"))
	assert.Equal(t, time.Hour, m.TTL("plan:abc"))

	got, found, err := c.Get(ctx, "plan:abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, plan.Routes, got.Routes)
	assert.Equal(t, plan.Policy, got.Policy)
	assert.True(t, plan.CreatedAt.Equal(got.CreatedAt))
}

func TestRedisPlanCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, m := newTestCache(t, time.Minute)

	require.NoError(t, c.Put(ctx, "plan:ttl", &domain.PlanResult{Mode: domain.ModeLocal}))
	m.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, "plan:ttl")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisPlanCacheErrors(t *testing.T) {
	ctx := context.Background()
	c, m := newTestCache(t, time.Minute)

	assert.Error(t, c.Put(ctx, "", &domain.PlanResult{}))
	assert.Error(t, c.Put(ctx, "k", nil))

	require.NoError(t, m.Set("plan:bad", "not json"))
	_, _, err := c.Get(ctx, "plan:bad")
	assert.Error(t, err)

	_, err = NewRedisPlanCacheFromURL("::not a url", time.Minute)
	assert.Error(t, err)
}
