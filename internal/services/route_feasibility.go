package services

import "mail-route-service/internal/domain"

// NextStopEvaluator scores candidate next stops of a route under construction.
//
// A candidate is eligible only when the vehicle can drive to it, load, and still
// drive straight back to the center within the remaining minutes. Among eligible
// candidates the nearest to the current stop scores highest.
type NextStopEvaluator struct {
	Grid             domain.Grid
	Policy           domain.Policy
	Center           domain.Point
	Current          domain.Point
	RemainingMinutes int
}

// NecessaryMinutes is the time to reach p, load there, and return to the center.
func (e NextStopEvaluator) NecessaryMinutes(p domain.Point) int {
	hop := e.Grid.ManhattanDistance(e.Current, p)
	back := e.Grid.ManhattanDistance(p, e.Center)
	return e.Policy.TravelUnitMinutes*(hop+back) + e.Policy.LoadMinutes
}

func (e NextStopEvaluator) Score(p domain.Point) (float64, bool) {
	if e.RemainingMinutes < e.NecessaryMinutes(p) {
		return 0, false
	}
	return -float64(e.Grid.ManhattanDistance(e.Current, p)), true
}
