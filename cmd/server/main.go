package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"mail-route-service/internal/adapters/cache"
	"mail-route-service/internal/adapters/repositories"
	"mail-route-service/internal/api"
	"mail-route-service/internal/config"
	"mail-route-service/internal/ports"
)

const planCacheTTL = 24 * time.Hour

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	conn, repo, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// The cache is optional; without REDIS_URL every request plans from scratch.
	var planCache ports.PlanCache
	if strings.TrimSpace(cfg.RedisURL) != "" {
		rc, err := cache.NewRedisPlanCacheFromURL(cfg.RedisURL, planCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		planCache = rc
	}

	router := api.NewRouter(repo, planCache, cfg)

	log.Printf("Server listening addr=:%s grid=%dx%d", cfg.Port, cfg.Grid.Width, cfg.Grid.Height)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
