package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mail-route-service/internal/domain"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// PlansTotal counts completed planning runs by mode.
	PlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_plans_total", Help: "Completed planning runs."},
		[]string{"mode"},
	)
	// RoutesPlanned counts routes produced by mode.
	RoutesPlanned = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routes_planned_total", Help: "Routes produced by planning runs."},
		[]string{"mode"},
	)
	// RouteStops records the number of stops per route.
	RouteStops = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_stops", Help: "Stops per planned route.", Buckets: []float64{1, 2, 5, 10, 20, 40, 80}},
		[]string{"mode"},
	)
	// PlanDuration records wall time of a planning run in seconds.
	PlanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_plan_duration_seconds", Help: "Planning run duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"mode"},
	)

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(PlansTotal)
		Registry.MustRegister(RoutesPlanned)
		Registry.MustRegister(RouteStops)
		Registry.MustRegister(PlanDuration)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObservePlan records one finished planning run.
func ObservePlan(res *domain.PlanResult, dur time.Duration) {
	mode := string(res.Mode)
	PlansTotal.WithLabelValues(mode).Inc()
	RoutesPlanned.WithLabelValues(mode).Add(float64(res.RouteCount()))
	for _, rp := range res.Routes {
		RouteStops.WithLabelValues(mode).Observe(float64(len(rp.Stops)))
	}
	PlanDuration.WithLabelValues(mode).Observe(dur.Seconds())
}
