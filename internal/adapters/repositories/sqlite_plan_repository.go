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

// Fixed-width so that text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite-backed implementation of the PlanRepository port.
type SqlitePlanRepository struct{ DB *sql.DB }

func NewSqlitePlanRepository(db *sql.DB) *SqlitePlanRepository {
	return &SqlitePlanRepository{DB: db}
}

// Store a plan and its routes in one transaction.
func (s *SqlitePlanRepository) SavePlan(ctx context.Context, plan *domain.PlanResult) (err error) {
	defer obs.Time(ctx, "plan.sqlite.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("sqlite plan repository: DB is nil")
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
		return fmt.Errorf("save plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO plans (
		plan_id, mode, grid_width, grid_height,
		travel_unit_minutes, load_minutes, single_budget_minutes, local_budget_minutes,
		budget_minutes, centers, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		row.ID, row.Mode, row.Width, row.Height,
		row.Policy.TravelUnitMinutes, row.Policy.LoadMinutes,
		row.Policy.SingleBudgetMinutes, row.Policy.LocalBudgetMinutes,
		row.Budget, row.Centers, plan.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save plan: insert plan_id=%s: %w", row.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO plan_routes (
		plan_id, route_index, center, stops, total_distance, total_minutes
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save plan: prepare route insert: %w", err)
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
		return fmt.Errorf("save plan: commit tx: %w", err)
	}

	return nil
}

// Return one plan with its routes in route order.
func (s *SqlitePlanRepository) GetPlan(ctx context.Context, id uuid.UUID) (_ *domain.PlanResult, err error) {
	defer obs.Time(ctx, "plan.sqlite.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite plan repository: DB is nil")
	}

	var (
		plan      domain.PlanResult
		mode      string
		centers   string
		createdAt string
	)
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		mode, grid_width, grid_height,
		travel_unit_minutes, load_minutes, single_budget_minutes, local_budget_minutes,
		budget_minutes, centers, created_at
	FROM plans
	WHERE plan_id = ?;
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
	if plan.Centers, err = decodePoints(centers); err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}
	if plan.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("get plan %s: parse created_at: %w", id, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT center, stops, total_distance, total_minutes
	FROM plan_routes
	WHERE plan_id = ?
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
			return nil, fmt.Errorf("get plan %s: scan route: %w", id, err)
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

// Return summaries of the most recent plans, newest first.
func (s *SqlitePlanRepository) ListPlans(ctx context.Context, limit int) ([]domain.PlanSummary, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite plan repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		p.plan_id, p.mode, p.grid_width, p.grid_height, p.created_at,
		(SELECT COUNT(*) FROM plan_routes r WHERE r.plan_id = p.plan_id)
	FROM plans p
	ORDER BY p.created_at DESC
	LIMIT ?;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: query plans table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PlanSummary, 0, limit)
	for rows.Next() {
		var (
			sum       domain.PlanSummary
			id, mode  string
			createdAt string
		)
		if err := rows.Scan(&id, &mode, &sum.Grid.Width, &sum.Grid.Height, &createdAt, &sum.RouteCount); err != nil {
			return nil, fmt.Errorf("list plans: scan row: %w", err)
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("list plans: parse plan_id %q: %w", id, err)
		}
		if sum.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("list plans: parse created_at: %w", err)
		}
		sum.Mode = domain.Mode(mode)
		sum.AverageRouteSize = averageRouteSize(sum.Grid.Width, sum.Grid.Height, sum.RouteCount)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}

	return out, nil
}
