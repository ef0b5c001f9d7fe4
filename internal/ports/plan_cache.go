package ports

import (
	"context"

	"mail-route-service/internal/domain"
)

// Optional cache of computed plans keyed by an input fingerprint.
type PlanCache interface {
	// Return the cached plan and whether it was found.
	Get(ctx context.Context, key string) (*domain.PlanResult, bool, error)
	Put(ctx context.Context, key string, plan *domain.PlanResult) error
}
