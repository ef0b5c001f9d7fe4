package domain

import (
	"fmt"
	"math"
)

// Point identifies a single delivery cell of a Grid, numbered row by row from the
// top left corner.
type Point int

// Immutable (row, col) position of a Point, counted from the top left corner.
type Coordinates struct {
	Row int
	Col int
}

// Grid is a fixed rectangle of delivery points.
// Width and Height are kept independent even though the reference layout is square.
type Grid struct {
	Width  int
	Height int
}

func NewGrid(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("new grid: %dx%d: %w", width, height, ErrInvalidGrid)
	}
	return Grid{Width: width, Height: height}, nil
}

// Size returns the number of points on the grid.
func (g Grid) Size() int { return g.Width * g.Height }

// Contains reports whether p is a valid point of the grid.
func (g Grid) Contains(p Point) bool { return p >= 0 && int(p) < g.Size() }

// PointAt returns the point at the given row and column.
func (g Grid) PointAt(row, col int) Point { return Point(row*g.Width + col) }

// CoordinatesOf maps p to its row and column. Rows are Width cells long, so
// the row is p / Width; on square grids this is the same as p / Height.
func (g Grid) CoordinatesOf(p Point) Coordinates {
	return Coordinates{Row: int(p) / g.Width, Col: int(p) % g.Width}
}

// Points returns every point of the grid in ascending order.
func (g Grid) Points() []Point {
	out := make([]Point, g.Size())
	for i := range out {
		out[i] = Point(i)
	}
	return out
}

// ManhattanDistance models travel along the street grid.
func (g Grid) ManhattanDistance(a, b Point) int {
	ca, cb := g.CoordinatesOf(a), g.CoordinatesOf(b)
	return abs(ca.Row-cb.Row) + abs(ca.Col-cb.Col)
}

// EuclideanDistance is the straight-line distance, used for catchment areas.
func (g Grid) EuclideanDistance(a, b Point) float64 {
	ca, cb := g.CoordinatesOf(a), g.CoordinatesOf(b)
	return math.Hypot(float64(ca.Row-cb.Row), float64(ca.Col-cb.Col))
}

// MainCenter is the hub placed at the middle of the grid.
func (g Grid) MainCenter() Point {
	return g.PointAt(g.Height/2, g.Width/2)
}

// QuadrantCenters returns the midpoints of the four grid quadrants, top row first.
func (g Grid) QuadrantCenters() []Point {
	top, bottom := g.Height/4, 3*g.Height/4
	left, right := g.Width/4, 3*g.Width/4
	return []Point{
		g.PointAt(top, left),
		g.PointAt(top, right),
		g.PointAt(bottom, left),
		g.PointAt(bottom, right),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
