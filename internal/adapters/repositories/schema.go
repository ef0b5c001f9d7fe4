package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Both dialects share these statements; only the timestamp column differs.
func schemaStatements(timestampType string) []string {
	createPlansQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS plans (
		plan_id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		grid_width INTEGER NOT NULL,
		grid_height INTEGER NOT NULL,
		travel_unit_minutes INTEGER NOT NULL,
		load_minutes INTEGER NOT NULL,
		single_budget_minutes INTEGER NOT NULL,
		local_budget_minutes INTEGER NOT NULL,
		budget_minutes INTEGER NOT NULL,
		centers TEXT NOT NULL,
		created_at %s NOT NULL
	);
	`, timestampType)

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS plan_routes (
		plan_id TEXT NOT NULL REFERENCES plans(plan_id) ON DELETE CASCADE,
		route_index INTEGER NOT NULL,
		center INTEGER NOT NULL,
		stops TEXT NOT NULL,
		total_distance INTEGER NOT NULL,
		total_minutes INTEGER NOT NULL,
		PRIMARY KEY (plan_id, route_index)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_created_at
	ON plans(created_at);
	`

	return []string{createPlansQuery, createRoutesQuery, createIndexQuery}
}

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, "TEXT")
}

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, "TIMESTAMPTZ")
}

func initSchema(ctx context.Context, db *sql.DB, timestampType string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements(timestampType) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
