package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mail-route-service/internal/domain"
	"mail-route-service/internal/metrics"
	"mail-route-service/internal/platform/obs"
)

type PlanDeliveriesRequest struct {
	Grid   domain.Grid
	Policy domain.Policy
	Mode   domain.Mode
	// LocalCenters overrides the quadrant midpoints in local mode.
	LocalCenters []domain.Point
}

// PlanDeliveries partitions the grid across centers and plans every route.
//
// Centers own disjoint dependants, so they are planned concurrently; routes of a
// single center are always built one after another because each route consumes
// the pool left by the previous one. Routes are returned grouped by center in
// center order, which keeps the result independent of scheduling.
func PlanDeliveries(ctx context.Context, req PlanDeliveriesRequest) (_ *domain.PlanResult, err error) {
	defer obs.Time(ctx, "services.PlanDeliveries")(&err)
	start := time.Now()

	if _, err := domain.NewGrid(req.Grid.Width, req.Grid.Height); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}
	if err := req.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	centers, err := BuildCenters(req.Grid, req.Mode, req.LocalCenters)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	if err := AssignToCenters(req.Grid, centers); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	budget := req.Policy.Budget(req.Mode)
	perCenter := make([][]domain.RoutePlan, len(centers))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range centers {
		i, c := i, c
		g.Go(func() error {
			plans, err := planCenter(gctx, req.Grid, req.Policy, c, budget)
			if err != nil {
				return err
			}
			perCenter[i] = plans
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	res := &domain.PlanResult{
		ID:            uuid.New(),
		Mode:          req.Mode,
		Grid:          req.Grid,
		Policy:        req.Policy,
		BudgetMinutes: budget,
		Centers:       make([]domain.Point, 0, len(centers)),
		CreatedAt:     time.Now().UTC(),
	}
	for i, c := range centers {
		res.Centers = append(res.Centers, c.Position)
		res.Routes = append(res.Routes, perCenter[i]...)
	}

	metrics.ObservePlan(res, time.Since(start))
	return res, nil
}

// planCenter drains the dependants of one center into routes.
func planCenter(
	ctx context.Context,
	grid domain.Grid,
	policy domain.Policy,
	center *domain.Center,
	budget int,
) ([]domain.RoutePlan, error) {
	plans := []domain.RoutePlan{}
	for center.Dependants.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan center %d: %w", center.Position, err)
		}

		route := PlanRoute(grid, policy, center.Position, center.Dependants, budget)
		rp := NewRoutePlan(grid, policy, center.Position, route)
		if rp.TotalMinutes > budget {
			// Only the unconditional first stop can push a route past its budget.
			log.Printf("req_id=%s route over budget center=%d first_stop=%d total_minutes=%d budget_minutes=%d",
				obs.RequestID(ctx), center.Position, route[0], rp.TotalMinutes, budget)
		}
		plans = append(plans, rp)
	}
	return plans, nil
}
