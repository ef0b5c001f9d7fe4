package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"mail-route-service/internal/adapters/output"
	"mail-route-service/internal/adapters/repositories"
	"mail-route-service/internal/config"
	"mail-route-service/internal/domain"
	"mail-route-service/internal/render"
	"mail-route-service/internal/services"
)

// main plans all routes once, writes routes.txt and world.txt, and prints the
// result to stdout.
func main() {
	local := flag.Bool("l", false, "use the local centers instead of the single main center")
	outDir := flag.String("out", ".", "directory for routes.txt and world.txt")
	withImage := flag.Bool("png", false, "also render world.png")
	persist := flag.Bool("persist", false, "store the plan in DATABASE_URL (postgres) or DB_PATH (sqlite)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mode := domain.ModeSingle
	if *local {
		mode = domain.ModeLocal
	}

	ctx := context.Background()
	plan, err := services.PlanDeliveries(ctx, services.PlanDeliveriesRequest{
		Grid:         cfg.Grid,
		Policy:       cfg.Policy,
		Mode:         mode,
		LocalCenters: cfg.LocalCenters,
	})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := output.WriteFiles(*outDir, plan, *withImage); err != nil {
		log.Fatal(err)
	}

	if *persist {
		if err := savePlan(ctx, cfg, plan); err != nil {
			log.Fatal(err)
		}
		log.Printf("plan saved plan_id=%s", plan.ID)
	}

	for _, rp := range plan.Routes {
		fmt.Println(render.FormatRoute(rp.Stops))
	}
	fmt.Println()
	fmt.Println(render.FormatWorld(plan))
	fmt.Print(render.FormatSummary(plan))
}

func savePlan(ctx context.Context, cfg config.Config, plan *domain.PlanResult) error {
	conn, repo, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repo.SavePlan(ctx, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}
