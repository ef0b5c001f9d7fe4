package services

import "mail-route-service/internal/domain"

// Direction turns a raw distance into a score so one selection routine serves
// both nearest and farthest searches.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) apply(distance float64) float64 {
	if d == Minimize {
		return -distance
	}
	return distance
}

type Metric int

const (
	// Manhattan measures travel along streets.
	Manhattan Metric = iota
	// Euclidean measures catchment areas as the crow flies.
	Euclidean
)

// DistanceEvaluator scores candidates by their distance from Reference.
type DistanceEvaluator struct {
	Grid      domain.Grid
	Reference domain.Point
	Direction Direction
	Metric    Metric
}

func (e DistanceEvaluator) distance(p domain.Point) float64 {
	if e.Metric == Euclidean {
		return e.Grid.EuclideanDistance(e.Reference, p)
	}
	return float64(e.Grid.ManhattanDistance(e.Reference, p))
}

// ScorePoint is always eligible; a candidate equal to Reference scores zero.
func (e DistanceEvaluator) ScorePoint(p domain.Point) (float64, bool) {
	return e.Direction.apply(e.distance(p)), true
}

func (e DistanceEvaluator) ScoreCenter(c *domain.Center) (float64, bool) {
	return e.ScorePoint(c.Position)
}
