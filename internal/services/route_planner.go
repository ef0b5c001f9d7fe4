package services

import (
	"fmt"

	"mail-route-service/internal/domain"
)

// Plan one vehicle route from center using a greedy, time-aware nearest-neighbor step.
//
// The first stop is the pool point nearest to the center and is taken
// unconditionally. Each following stop is the nearest remaining point that still
// leaves time to return to the center. Every placed point is removed from pool;
// callers invoke PlanRoute repeatedly until the pool is empty.
//
// An empty pool or a non-positive budget is a programming error and panics.
func PlanRoute(
	grid domain.Grid,
	policy domain.Policy,
	center domain.Point,
	pool *domain.PointSet,
	budgetMinutes int,
) domain.Route {
	if pool == nil || pool.Len() == 0 {
		panic("plan route: pool must not be empty")
	}
	if budgetMinutes <= 0 {
		panic(fmt.Sprintf("plan route: budget must be positive, got %d", budgetMinutes))
	}

	nearest := DistanceEvaluator{Grid: grid, Reference: center, Direction: Minimize, Metric: Manhattan}
	current, found := SelectBest(pool.Points(), nearest.ScorePoint)
	if !found {
		panic("plan route: failed to select a starting point")
	}

	lastStop := center
	remaining := budgetMinutes
	route := domain.Route{}

	for found {
		// Drive to the stop and load there.
		remaining -= policy.StopMinutes(grid.ManhattanDistance(lastStop, current))
		route = append(route, current)
		pool.Remove(current)
		lastStop = current

		next := NextStopEvaluator{
			Grid:             grid,
			Policy:           policy,
			Center:           center,
			Current:          lastStop,
			RemainingMinutes: remaining,
		}
		current, found = SelectBest(pool.Points(), next.Score)
	}

	return route
}

// NewRoutePlan computes travel totals for a finished route, return leg included.
func NewRoutePlan(grid domain.Grid, policy domain.Policy, center domain.Point, route domain.Route) domain.RoutePlan {
	distance := 0
	minutes := 0
	last := center
	for _, p := range route {
		d := grid.ManhattanDistance(last, p)
		distance += d
		minutes += policy.StopMinutes(d)
		last = p
	}
	back := grid.ManhattanDistance(last, center)
	distance += back
	minutes += policy.TravelUnitMinutes * back

	return domain.RoutePlan{
		Center:        center,
		Stops:         route,
		TotalDistance: distance,
		TotalMinutes:  minutes,
	}
}
