package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mail-route-service/internal/domain"
)

func TestSelectBest(t *testing.T) {
	identity := func(v int) (float64, bool) { return float64(v), true }

	t.Run("empty candidates", func(t *testing.T) {
		_, found := SelectBest([]int{}, identity)
		assert.False(t, found)
	})

	t.Run("greatest score wins", func(t *testing.T) {
		best, found := SelectBest([]int{3, -1, 7, 2}, identity)
		require.True(t, found)
		assert.Equal(t, 7, best)
	})

	t.Run("first candidate wins ties", func(t *testing.T) {
		type item struct {
			id    int
			score float64
		}
		items := []item{{1, -2}, {2, -1}, {3, -1}, {4, -5}}
		best, found := SelectBest(items, func(it item) (float64, bool) { return it.score, true })
		require.True(t, found)
		assert.Equal(t, 2, best.id)
	})

	t.Run("ineligible candidates are skipped", func(t *testing.T) {
		odd := func(v int) (float64, bool) { return float64(v), v%2 == 1 }
		best, found := SelectBest([]int{8, 3, 10, 5}, odd)
		require.True(t, found)
		assert.Equal(t, 5, best)

		_, found = SelectBest([]int{2, 4}, odd)
		assert.False(t, found)
	})

	t.Run("zero score is eligible", func(t *testing.T) {
		best, found := SelectBest([]int{0, -3}, identity)
		require.True(t, found)
		assert.Equal(t, 0, best)
	})
}

func TestDistanceEvaluatorDirections(t *testing.T) {
	grid := domain.Grid{Width: 4, Height: 4}
	pts := []domain.Point{1, 5, 15, 10}

	nearest := DistanceEvaluator{Grid: grid, Reference: 0, Direction: Minimize, Metric: Manhattan}
	best, found := SelectBest(pts, nearest.ScorePoint)
	require.True(t, found)
	assert.Equal(t, domain.Point(1), best)

	farthest := DistanceEvaluator{Grid: grid, Reference: 0, Direction: Maximize, Metric: Manhattan}
	best, found = SelectBest(pts, farthest.ScorePoint)
	require.True(t, found)
	assert.Equal(t, domain.Point(15), best)

	self, ok := nearest.ScorePoint(0)
	assert.True(t, ok, "a zero-distance candidate stays eligible")
	assert.Zero(t, self)

	euclid := DistanceEvaluator{Grid: grid, Reference: 0, Direction: Maximize, Metric: Euclidean}
	score, ok := euclid.ScoreCenter(domain.NewCenter(5))
	require.True(t, ok)
	assert.InDelta(t, 1.41421356, score, 1e-6)
}

func TestNextStopEvaluator(t *testing.T) {
	grid := domain.Grid{Width: 4, Height: 4}
	policy := domain.Policy{TravelUnitMinutes: 6, LoadMinutes: 15, SingleBudgetMinutes: 480, LocalBudgetMinutes: 360}

	e := NextStopEvaluator{Grid: grid, Policy: policy, Center: 0, Current: 5, RemainingMinutes: 45}

	// 5 -> 6 is one hop, 6 -> 0 is three hops back.
	assert.Equal(t, 6*(1+3)+15, e.NecessaryMinutes(6))

	score, ok := e.Score(6)
	require.True(t, ok)
	assert.Equal(t, -1.0, score)

	e.RemainingMinutes = 38
	_, ok = e.Score(6)
	assert.False(t, ok, "one minute short of the return leg")

	e.RemainingMinutes = 39
	_, ok = e.Score(6)
	assert.True(t, ok, "exact fit is feasible")
}
