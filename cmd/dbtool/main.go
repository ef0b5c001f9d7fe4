package main

import (
	"context"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"mail-route-service/internal/adapters/repositories"
	"mail-route-service/internal/config"
	"mail-route-service/internal/platform/db"
)

// dbtool creates the plan tables in the Postgres database at DATABASE_URL.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(context.Background(), conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
