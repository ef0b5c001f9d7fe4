package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mail-route-service/internal/domain"
)

func centersAt(points ...domain.Point) []*domain.Center {
	out := make([]*domain.Center, 0, len(points))
	for _, p := range points {
		out = append(out, domain.NewCenter(p))
	}
	return out
}

func ownership(centers []*domain.Center) map[domain.Point]domain.Point {
	out := map[domain.Point]domain.Point{}
	for _, c := range centers {
		for _, p := range c.Dependants.Points() {
			out[p] = c.Position
		}
	}
	return out
}

func TestAssignToCentersQuadrants(t *testing.T) {
	grid := domain.Grid{Width: 4, Height: 4}
	centers := centersAt(grid.QuadrantCenters()...)

	require.NoError(t, AssignToCenters(grid, centers))

	total := 0
	for _, c := range centers {
		total += c.Dependants.Len()
		assert.False(t, c.Dependants.Contains(c.Position), "center %d owns itself", c.Position)
	}
	assert.Equal(t, grid.Size()-len(centers), total, "assignment must be a partition")

	owners := ownership(centers)
	assert.Len(t, owners, grid.Size()-len(centers))
	assert.Equal(t, domain.Point(5), owners[0])
	assert.Equal(t, domain.Point(7), owners[3])
	assert.Equal(t, domain.Point(13), owners[12])
	// Equidistant between 5 and 7: the earlier center wins.
	assert.Equal(t, domain.Point(5), owners[6])
	// Equidistant from all four centers.
	assert.Equal(t, domain.Point(5), owners[10])
}

func TestAssignToCentersIsDeterministic(t *testing.T) {
	grid := domain.Grid{Width: 4, Height: 4}

	first := centersAt(grid.QuadrantCenters()...)
	second := centersAt(grid.QuadrantCenters()...)
	require.NoError(t, AssignToCenters(grid, first))
	require.NoError(t, AssignToCenters(grid, second))

	assert.Equal(t, ownership(first), ownership(second))
}

func TestAssignToCentersSingleOwnsEverything(t *testing.T) {
	grid := domain.Grid{Width: 3, Height: 3}
	centers := centersAt(4)

	require.NoError(t, AssignToCenters(grid, centers))
	assert.Equal(t, []domain.Point{0, 1, 2, 3, 5, 6, 7, 8}, centers[0].Dependants.Points())
}

func TestAssignToCentersRequiresCenters(t *testing.T) {
	err := AssignToCenters(domain.Grid{Width: 2, Height: 2}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCenter)
}

func TestBuildCenters(t *testing.T) {
	grid := domain.Grid{Width: 32, Height: 32}

	single, err := BuildCenters(grid, domain.ModeSingle, nil)
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, domain.Point(528), single[0].Position)

	local, err := BuildCenters(grid, domain.ModeLocal, nil)
	require.NoError(t, err)
	positions := []domain.Point{}
	for _, c := range local {
		positions = append(positions, c.Position)
	}
	assert.Equal(t, []domain.Point{528, 264, 280, 776, 792}, positions)

	custom, err := BuildCenters(grid, domain.ModeLocal, []domain.Point{0, 1023})
	require.NoError(t, err)
	assert.Len(t, custom, 3)

	_, err = BuildCenters(grid, domain.ModeLocal, []domain.Point{528})
	assert.ErrorIs(t, err, domain.ErrInvalidCenter)

	_, err = BuildCenters(grid, domain.ModeLocal, []domain.Point{5000})
	assert.ErrorIs(t, err, domain.ErrInvalidCenter)

	_, err = BuildCenters(grid, domain.Mode("regional"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCenter)
}
