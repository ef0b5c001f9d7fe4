package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mail-route-service/internal/domain"
	"mail-route-service/internal/platform/obs"
)

// SQLPlanRepository is the Postgres implementation of the PlanRepository port,
// used through the pgx stdlib driver.
type SQLPlanRepository struct {
	DB *sql.DB
}

func NewSQLPlanRepository(db *sql.DB) *SQLPlanRepository {
	return &SQLPlanRepository{DB: db}
}

func (s *SQLPlanRepository) SavePlan(ctx context.Context, plan *domain.PlanResult) (err error) {
	defer obs.Time(ctx, "plan.sql.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("plan repository: db is nil")
	}
	if plan == nil {
		return errors.New("save plan: plan must be non-nil")
	}

	row, err := newPlanRow(plan)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plan: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO plans (
		plan_id, mode, grid_width, grid_height,
		travel_unit_minutes, load_minutes, single_budget_minutes, local_budget_minutes,
		budget_minutes, centers, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		row.ID, row.Mode, row.Width, row.Height,
		row.Policy.TravelUnitMinutes, row.Policy.LoadMinutes,
		row.Policy.SingleBudgetMinutes, row.Policy.LocalBudgetMinutes,
		row.Budget, row.Centers, plan.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save plan: insert plan_id=%s: %w", row.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO plan_routes (plan_id, route_index, center, stops, total_distance, total_minutes)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("save plan: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, rp := range plan.Routes {
		stops, err := encodeStops(rp.Stops)
		if err != nil {
			return fmt.Errorf("save plan: route %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, row.ID, i, int(rp.Center), stops, rp.TotalDistance, rp.TotalMinutes); err != nil {
			return fmt.Errorf("save plan: insert route %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save plan: commit: %w", err)
	}

	return nil
}

func (s *SQLPlanRepository) GetPlan(ctx context.Context, id uuid.UUID) (_ *domain.PlanResult, err error) {
	defer obs.Time(ctx, "plan.sql.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("plan repository: db is nil")
	}

	var (
		plan      domain.PlanResult
		mode      string
		centers   string
		createdAt time.Time
	)
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		mode, grid_width, grid_height,
		travel_unit_minutes, load_minutes, single_budget_minutes, local_budget_minutes,
		budget_minutes, centers, created_at
	FROM plans
	WHERE plan_id = $1;
	`, id.String()).Scan(
		&mode, &plan.Grid.Width, &plan.Grid.Height,
		&plan.Policy.TravelUnitMinutes, &plan.Policy.LoadMinutes,
		&plan.Policy.SingleBudgetMinutes, &plan.Policy.LocalBudgetMinutes,
		&plan.BudgetMinutes, &centers, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: query plans table: %w", id, err)
	}

	plan.ID = id
	plan.Mode = domain.Mode(mode)
	plan.CreatedAt = createdAt.UTC()
	if plan.Centers, err = decodePoints(centers); err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT center, stops, total_distance, total_minutes
	FROM plan_routes
	WHERE plan_id = $1
	ORDER BY route_index;
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("get plan %s: query plan_routes table: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rp     domain.RoutePlan
			center int
			stops  string
		)
		if err := rows.Scan(&center, &stops, &rp.TotalDistance, &rp.TotalMinutes); err != nil {
			return nil, fmt.Errorf("get plan %s: scan rows: %w", id, err)
		}
		rp.Center = domain.Point(center)
		if rp.Stops, err = decodePoints(stops); err != nil {
			return nil, fmt.Errorf("get plan %s: %w", id, err)
		}
		plan.Routes = append(plan.Routes, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get plan %s: row iteration: %w", id, err)
	}

	return &plan, nil
}

func (s *SQLPlanRepository) ListPlans(ctx context.Context, limit int) ([]domain.PlanSummary, error) {
	if s.DB == nil {
		return nil, errors.New("plan repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT p.plan_id, p.mode, p.grid_width, p.grid_height, p.created_at, COUNT(r.route_index)
	FROM plans p
	LEFT JOIN plan_routes r ON r.plan_id = p.plan_id
	GROUP BY p.plan_id
	ORDER BY p.created_at DESC
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: query plans table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PlanSummary, 0, limit)
	for rows.Next() {
		var (
			sum      domain.PlanSummary
			id, mode string
		)
		if err := rows.Scan(&id, &mode, &sum.Grid.Width, &sum.Grid.Height, &sum.CreatedAt, &sum.RouteCount); err != nil {
			return nil, fmt.Errorf("list plans: scan rows: %w", err)
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("list plans: parse plan_id %q: %w", id, err)
		}
		sum.Mode = domain.Mode(mode)
		sum.CreatedAt = sum.CreatedAt.UTC()
		sum.AverageRouteSize = averageRouteSize(sum.Grid.Width, sum.Grid.Height, sum.RouteCount)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}

	return out, nil
}
