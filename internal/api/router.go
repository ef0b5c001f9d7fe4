package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"mail-route-service/internal/api/handlers"
	"mail-route-service/internal/config"
	"mail-route-service/internal/metrics"
	"mail-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// repo and cache may be nil.
func NewRouter(repo ports.PlanRepository, cache ports.PlanCache, cfg config.Config) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Repo:         repo,
		Cache:        cache,
		Grid:         cfg.Grid,
		Policy:       cfg.Policy,
		LocalCenters: cfg.LocalCenters,
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	routes := []struct {
		pattern string
		handler http.Handler
	}{
		{"/health", http.HandlerFunc(handlers.Health)},
		{"/plans", rateLimitMiddleware(limiter, http.HandlerFunc(planHandler.Plans))},
		{"/plans/", rateLimitMiddleware(limiter, http.HandlerFunc(planHandler.Get))},
		{"/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})},
	}
	for _, rt := range routes {
		mux.Handle(rt.pattern, loggingMiddleware(rt.pattern, rt.handler))
	}

	return requestIDMiddleware(mux)
}
