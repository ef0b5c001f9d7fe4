package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"mail-route-service/internal/adapters/cache"
	"mail-route-service/internal/adapters/repositories"
	"mail-route-service/internal/api/dto"
	"mail-route-service/internal/config"
	"mail-route-service/internal/domain"
	"mail-route-service/internal/ports"
)

func testConfig() config.Config {
	return config.Config{
		Grid:           domain.Grid{Width: 4, Height: 4},
		Policy:         domain.DefaultPolicy(),
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

func newTestRepo(t *testing.T) *repositories.SqlitePlanRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repositories.InitSchema(context.Background(), db))
	return repositories.NewSqlitePlanRepository(db)
}

func newTestCache(t *testing.T) *cache.RedisPlanCache {
	t.Helper()
	m := miniredis.RunT(t)
	c := cache.NewRedisPlanCache(redis.NewClient(&redis.Options{Addr: m.Addr()}), time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodePlan(t *testing.T, rr *httptest.ResponseRecorder) dto.PlanResponse {
	t.Helper()
	var res dto.PlanResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	return res
}

func TestHealth(t *testing.T) {
	h := NewRouter(nil, nil, testConfig())

	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestPlanSingleCenter(t *testing.T) {
	h := NewRouter(nil, nil, testConfig())

	rr := do(t, h, http.MethodPost, "/plans", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	res := decodePlan(t, rr)
	assert.Equal(t, "single", res.Mode)
	assert.Equal(t, []int{10}, res.Centers)
	assert.Equal(t, 480, res.BudgetMinutes)
	assert.Len(t, res.RouteByPoint, 15)
	assert.Equal(t, res.RouteCount, len(res.Routes))
	assert.False(t, res.Cached)
	assert.False(t, res.Persisted)

	for _, rt := range res.Routes {
		assert.NotEmpty(t, rt.Stops)
		assert.LessOrEqual(t, rt.TotalMinutes, res.BudgetMinutes)
	}
}

func TestPlanPersistAndFetch(t *testing.T) {
	h := NewRouter(newTestRepo(t), nil, testConfig())

	rr := do(t, h, http.MethodPost, "/plans", `{"local_centers":true,"persist":true}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	created := decodePlan(t, rr)
	assert.Equal(t, "local", created.Mode)
	assert.Equal(t, []int{10, 5, 7, 13, 15}, created.Centers)
	assert.True(t, created.Persisted)

	rr = do(t, h, http.MethodGet, "/plans/"+created.PlanID, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	fetched := decodePlan(t, rr)
	assert.Equal(t, created.Routes, fetched.Routes)
	assert.Equal(t, created.RouteByPoint, fetched.RouteByPoint)

	rr = do(t, h, http.MethodGet, "/plans?limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list dto.ListPlanResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list.Plans, 1)
	assert.Equal(t, created.PlanID, list.Plans[0].PlanID)
	assert.Equal(t, created.RouteCount, list.Plans[0].RouteCount)
}

func TestPlanServedFromCache(t *testing.T) {
	h := NewRouter(nil, newTestCache(t), testConfig())

	first := decodePlan(t, do(t, h, http.MethodPost, "/plans", `{"local_centers":true}`))
	second := decodePlan(t, do(t, h, http.MethodPost, "/plans", `{"local_centers":true}`))

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.NotEqual(t, first.PlanID, second.PlanID)
	assert.Equal(t, first.Routes, second.Routes)

	other := decodePlan(t, do(t, h, http.MethodPost, "/plans", `{}`))
	assert.False(t, other.Cached, "single mode has its own cache key")
}

func TestPlanRequestErrors(t *testing.T) {
	h := NewRouter(nil, nil, testConfig())

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown field", http.MethodPost, "/plans", `{"trucks":3}`, http.StatusBadRequest},
		{"two objects", http.MethodPost, "/plans", `{}{}`, http.StatusBadRequest},
		{"persist without repo", http.MethodPost, "/plans", `{"persist":true}`, http.StatusServiceUnavailable},
		{"list without repo", http.MethodGet, "/plans", "", http.StatusServiceUnavailable},
		{"wrong method", http.MethodDelete, "/plans", "", http.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := do(t, h, c.method, c.path, c.body)
			assert.Equal(t, c.status, rr.Code, rr.Body.String())
		})
	}
}

func TestGetPlanErrors(t *testing.T) {
	h := NewRouter(newTestRepo(t), nil, testConfig())

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/plans/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/plans/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/plans?limit=0", "").Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	h := NewRouter(nil, nil, cfg)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/plans", "").Code)
	rr := do(t, h, http.MethodPost, "/plans", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code, "health is not limited")
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewRouter(nil, nil, testConfig())
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/plans", "").Code)

	rr := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "route_plans_total"))
	assert.True(t, strings.Contains(body, "http_requests_total"))
}

var _ ports.PlanCache = (*cache.RedisPlanCache)(nil)
var _ ports.PlanRepository = (*repositories.SqlitePlanRepository)(nil)
