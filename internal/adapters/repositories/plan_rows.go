package repositories

import (
	"encoding/json"
	"fmt"

	"mail-route-service/internal/domain"
)

// planRow is the plans table row shared by both dialects.
type planRow struct {
	ID      string
	Mode    string
	Width   int
	Height  int
	Policy  domain.Policy
	Budget  int
	Centers string
}

func newPlanRow(plan *domain.PlanResult) (planRow, error) {
	centers, err := json.Marshal(plan.Centers)
	if err != nil {
		return planRow{}, fmt.Errorf("encode centers: %w", err)
	}
	return planRow{
		ID:      plan.ID.String(),
		Mode:    string(plan.Mode),
		Width:   plan.Grid.Width,
		Height:  plan.Grid.Height,
		Policy:  plan.Policy,
		Budget:  plan.BudgetMinutes,
		Centers: string(centers),
	}, nil
}

func encodeStops(stops domain.Route) (string, error) {
	b, err := json.Marshal(stops)
	if err != nil {
		return "", fmt.Errorf("encode stops: %w", err)
	}
	return string(b), nil
}

func decodePoints(s string) ([]domain.Point, error) {
	var out []domain.Point
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decode points %q: %w", s, err)
	}
	return out, nil
}

func averageRouteSize(width, height, routeCount int) float64 {
	if routeCount == 0 {
		return 0
	}
	return float64(width*height) / float64(routeCount)
}
