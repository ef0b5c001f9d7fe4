package domain

import "fmt"

// Mode selects between one main center and the set of local centers.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeLocal  Mode = "local"
)

// Policy holds the fixed time constants of a planning run, in minutes.
type Policy struct {
	TravelUnitMinutes   int `yaml:"travel_unit_minutes" json:"travel_unit_minutes"`
	LoadMinutes         int `yaml:"load_minutes" json:"load_minutes"`
	SingleBudgetMinutes int `yaml:"single_budget_minutes" json:"single_budget_minutes"`
	LocalBudgetMinutes  int `yaml:"local_budget_minutes" json:"local_budget_minutes"`
}

// DefaultPolicy mirrors the reference operating windows: a third of a day for one
// center, a quarter of a day for local centers.
func DefaultPolicy() Policy {
	return Policy{
		TravelUnitMinutes:   6,
		LoadMinutes:         15,
		SingleBudgetMinutes: 24 / 3 * 60,
		LocalBudgetMinutes:  24 / 4 * 60,
	}
}

func (p Policy) Validate() error {
	if p.TravelUnitMinutes < 0 || p.LoadMinutes < 0 {
		return fmt.Errorf("validate policy: travel unit and load time must not be negative: %w", ErrInvalidPolicy)
	}
	if p.SingleBudgetMinutes <= 0 || p.LocalBudgetMinutes <= 0 {
		return fmt.Errorf("validate policy: budgets must be positive: %w", ErrInvalidPolicy)
	}
	// A budget must at least cover serving a neighbouring cell and driving back.
	if floor := p.MinBudgetMinutes(); p.SingleBudgetMinutes < floor || p.LocalBudgetMinutes < floor {
		return fmt.Errorf("validate policy: budgets must be at least %d minutes: %w", floor, ErrInvalidPolicy)
	}
	return nil
}

// Budget returns the per-route time budget for the given mode.
func (p Policy) Budget(mode Mode) int {
	if mode == ModeLocal {
		return p.LocalBudgetMinutes
	}
	return p.SingleBudgetMinutes
}

// MinBudgetMinutes is the round trip to an adjacent cell, load included.
func (p Policy) MinBudgetMinutes() int {
	return p.StopMinutes(1) + p.TravelUnitMinutes
}

// StopMinutes is the time to drive distance units and load at the stop.
func (p Policy) StopMinutes(distance int) int {
	return p.TravelUnitMinutes*distance + p.LoadMinutes
}
