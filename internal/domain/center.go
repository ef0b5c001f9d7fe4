package domain

// Center is a hub point that routes start from and return to.
// Dependants holds the points assigned to the center that are not yet routed;
// it shrinks as routes are planned and is empty once planning finishes.
type Center struct {
	Position   Point
	Dependants *PointSet
}

func NewCenter(position Point) *Center {
	return &Center{
		Position:   position,
		Dependants: NewPointSet(),
	}
}
