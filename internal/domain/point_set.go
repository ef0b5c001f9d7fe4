package domain

import "slices"

// PointSet is an ordered set of points iterated in ascending id order.
// It is not safe for concurrent use; a set is owned by one Center at a time.
type PointSet struct {
	points []Point
}

func NewPointSet(points ...Point) *PointSet {
	s := &PointSet{}
	for _, p := range points {
		s.Add(p)
	}
	return s
}

// Add inserts p, keeping ascending order. Adding an existing point is a no-op.
func (s *PointSet) Add(p Point) {
	i, found := slices.BinarySearch(s.points, p)
	if found {
		return
	}
	s.points = slices.Insert(s.points, i, p)
}

// Remove deletes p and reports whether it was present.
func (s *PointSet) Remove(p Point) bool {
	i, found := slices.BinarySearch(s.points, p)
	if !found {
		return false
	}
	s.points = slices.Delete(s.points, i, i+1)
	return true
}

func (s *PointSet) Contains(p Point) bool {
	_, found := slices.BinarySearch(s.points, p)
	return found
}

func (s *PointSet) Len() int { return len(s.points) }

// Points returns a copy of the members in ascending order.
func (s *PointSet) Points() []Point { return slices.Clone(s.points) }
