package ports

import (
	"context"

	"github.com/google/uuid"

	"mail-route-service/internal/domain"
)

// Port: a boundary for storing and retrieving finished planning runs.
type PlanRepository interface {
	// Persist a plan with all of its routes.
	SavePlan(ctx context.Context, plan *domain.PlanResult) error
	// Retrieve one plan; returns domain.ErrPlanNotFound when absent.
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.PlanResult, error)
	// List the most recent plans, newest first.
	ListPlans(ctx context.Context, limit int) ([]domain.PlanSummary, error)
}
