package services

import (
	"fmt"

	"mail-route-service/internal/domain"
)

// BuildCenters returns the centers for a planning mode.
//
// Single mode uses the main center alone. Local mode keeps the main center and
// adds the local seeds, or the four quadrant midpoints when no seeds are given.
func BuildCenters(grid domain.Grid, mode domain.Mode, localSeeds []domain.Point) ([]*domain.Center, error) {
	positions := []domain.Point{grid.MainCenter()}

	switch mode {
	case domain.ModeSingle:
	case domain.ModeLocal:
		seeds := localSeeds
		if len(seeds) == 0 {
			seeds = grid.QuadrantCenters()
		}
		positions = append(positions, seeds...)
	default:
		return nil, fmt.Errorf("build centers: unknown mode %q: %w", mode, domain.ErrInvalidCenter)
	}

	seen := make(map[domain.Point]struct{}, len(positions))
	centers := make([]*domain.Center, 0, len(positions))
	for _, p := range positions {
		if !grid.Contains(p) {
			return nil, fmt.Errorf("build centers: point %d outside %dx%d grid: %w", p, grid.Width, grid.Height, domain.ErrInvalidCenter)
		}
		if _, ok := seen[p]; ok {
			return nil, fmt.Errorf("build centers: duplicate center %d: %w", p, domain.ErrInvalidCenter)
		}
		seen[p] = struct{}{}
		centers = append(centers, domain.NewCenter(p))
	}

	return centers, nil
}

// AssignToCenters partitions every non-center grid point across centers.
//
// With one center it owns everything. Otherwise each point goes to the center
// nearest in straight-line distance; the earlier center in the list wins ties.
// Center points are never dependants.
func AssignToCenters(grid domain.Grid, centers []*domain.Center) error {
	if len(centers) == 0 {
		return fmt.Errorf("assign to centers: center list must not be empty: %w", domain.ErrInvalidCenter)
	}

	isCenter := make(map[domain.Point]struct{}, len(centers))
	for _, c := range centers {
		isCenter[c.Position] = struct{}{}
	}

	for _, p := range grid.Points() {
		if _, ok := isCenter[p]; ok {
			continue
		}

		if len(centers) == 1 {
			centers[0].Dependants.Add(p)
			continue
		}

		nearest := DistanceEvaluator{Grid: grid, Reference: p, Direction: Minimize, Metric: Euclidean}
		owner, found := SelectBest(centers, nearest.ScoreCenter)
		if !found {
			return fmt.Errorf("assign to centers: no center for point %d", p)
		}
		owner.Dependants.Add(p)
	}

	return nil
}
