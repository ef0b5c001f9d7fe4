package repositories

import (
	"context"
	"database/sql"
	"strings"

	"mail-route-service/internal/platform/db"
	"mail-route-service/internal/ports"
)

// Open returns a ready plan repository and its connection. Postgres is used
// when databaseURL is set, otherwise the SQLite file at sqlitePath.
// The caller owns the returned *sql.DB and must import the matching driver.
func Open(ctx context.Context, databaseURL, sqlitePath string) (*sql.DB, ports.PlanRepository, error) {
	if strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return conn, NewSQLPlanRepository(conn), nil
	}

	conn, err := db.OpenSQLite(sqlitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, NewSqlitePlanRepository(conn), nil
}
