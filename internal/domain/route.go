package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route is the ordered visitation sequence of one vehicle trip. The owning center
// is implicit at both ends and is not stored.
type Route []Point

// Represents the planned trip of one vehicle from its center.
// TotalDistance and TotalMinutes include the return leg to the center.
type RoutePlan struct {
	Center        Point
	Stops         Route
	TotalDistance int
	TotalMinutes  int
}

// PlanResult is the full output of one planning run across all centers.
// Routes are grouped by center, in center order.
type PlanResult struct {
	ID            uuid.UUID
	Mode          Mode
	Grid          Grid
	Policy        Policy
	BudgetMinutes int
	Centers       []Point
	Routes        []RoutePlan
	CreatedAt     time.Time
}

func (r *PlanResult) RouteCount() int { return len(r.Routes) }

// AverageRouteSize divides the whole grid size by the number of routes.
func (r *PlanResult) AverageRouteSize() float64 {
	if len(r.Routes) == 0 {
		return 0
	}
	return float64(r.Grid.Size()) / float64(len(r.Routes))
}

// RouteIndexByPoint maps every routed point to the index of the route visiting it.
func (r *PlanResult) RouteIndexByPoint() map[Point]int {
	out := make(map[Point]int, r.Grid.Size())
	for i, rp := range r.Routes {
		for _, p := range rp.Stops {
			out[p] = i
		}
	}
	return out
}

// PlanSummary is the listing view of a persisted plan.
type PlanSummary struct {
	ID               uuid.UUID
	Mode             Mode
	Grid             Grid
	RouteCount       int
	AverageRouteSize float64
	CreatedAt        time.Time
}

func (r *PlanResult) Summary() PlanSummary {
	return PlanSummary{
		ID:               r.ID,
		Mode:             r.Mode,
		Grid:             r.Grid,
		RouteCount:       r.RouteCount(),
		AverageRouteSize: r.AverageRouteSize(),
		CreatedAt:        r.CreatedAt,
	}
}
