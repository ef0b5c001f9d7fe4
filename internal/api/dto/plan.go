package dto

import "time"

type PlanRequest struct {
	LocalCenters bool `json:"local_centers"`
	Persist      bool `json:"persist"`
}

type GridResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type RouteResponse struct {
	Index         int    `json:"index"`
	Center        int    `json:"center"`
	Stops         []int  `json:"stops"`
	Path          string `json:"path"`
	TotalDistance int    `json:"total_distance"`
	TotalMinutes  int    `json:"total_minutes"`
}

type PlanResponse struct {
	PlanID           string          `json:"plan_id"`
	Mode             string          `json:"mode"`
	Grid             GridResponse    `json:"grid"`
	BudgetMinutes    int             `json:"budget_minutes"`
	Centers          []int           `json:"centers"`
	Routes           []RouteResponse `json:"routes"`
	RouteCount       int             `json:"route_count"`
	AverageRouteSize float64         `json:"average_route_size"`
	RouteByPoint     map[int]int     `json:"route_by_point"`
	CreatedAt        time.Time       `json:"created_at"`
	Cached           bool            `json:"cached"`
	Persisted        bool            `json:"persisted"`
}

type PlanSummaryResponse struct {
	PlanID           string       `json:"plan_id"`
	Mode             string       `json:"mode"`
	Grid             GridResponse `json:"grid"`
	RouteCount       int          `json:"route_count"`
	AverageRouteSize float64      `json:"average_route_size"`
	CreatedAt        time.Time    `json:"created_at"`
}

type ListPlanResponse struct {
	Plans []PlanSummaryResponse `json:"plans"`
}
