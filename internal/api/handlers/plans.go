package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mail-route-service/internal/api/dto"
	"mail-route-service/internal/domain"
	"mail-route-service/internal/platform/obs"
	"mail-route-service/internal/ports"
	"mail-route-service/internal/render"
	"mail-route-service/internal/services"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// PlanHandler serves planning runs. Repo and Cache are optional; without a
// repository plans cannot be persisted or fetched later.
type PlanHandler struct {
	Repo         ports.PlanRepository
	Cache        ports.PlanCache
	Grid         domain.Grid
	Policy       domain.Policy
	LocalCenters []domain.Point
}

// Plans dispatches the collection endpoint: POST plans, GET lists.
func (h *PlanHandler) Plans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Plan(w, r)
	case http.MethodGet:
		h.List(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Plan partitions the grid across centers and plans every route.
// Identical inputs are answered from the cache when one is configured.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Persist && h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "plan persistence is not configured")
		return
	}

	mode := domain.ModeSingle
	if req.LocalCenters {
		mode = domain.ModeLocal
	}
	svcReq := services.PlanDeliveriesRequest{
		Grid:         h.Grid,
		Policy:       h.Policy,
		Mode:         mode,
		LocalCenters: h.LocalCenters,
	}

	ctx := r.Context()
	reqID := obs.RequestID(ctx)
	key := services.PlanKey(svcReq)

	var (
		plan   *domain.PlanResult
		cached bool
	)
	if h.Cache != nil {
		hit, found, err := h.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("req_id=%s plan cache get failed: key=%s err=%v", reqID, key, err)
		} else if found {
			// Same routes, new run record.
			hit.ID = uuid.New()
			hit.CreatedAt = time.Now().UTC()
			plan, cached = hit, true
		}
	}

	if plan == nil {
		var err error
		plan, err = services.PlanDeliveries(ctx, svcReq)
		if err != nil {
			log.Printf("req_id=%s plan deliveries failed: %v", reqID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		if h.Cache != nil {
			if err := h.Cache.Put(ctx, key, plan); err != nil {
				log.Printf("req_id=%s plan cache put failed: key=%s err=%v", reqID, key, err)
			}
		}
	}

	if req.Persist {
		if err := h.Repo.SavePlan(ctx, plan); err != nil {
			log.Printf("req_id=%s save plan failed: plan_id=%s err=%v", reqID, plan.ID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	res := toPlanResponse(plan)
	res.Cached = cached
	res.Persisted = req.Persist
	writeJSON(w, r, http.StatusOK, res)
}

// List returns summaries of persisted plans, newest first.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "plan persistence is not configured")
		return
	}

	limit := defaultListLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	plans, err := h.Repo.ListPlans(r.Context(), limit)
	if err != nil {
		log.Printf("req_id=%s list plans failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlanResponse{Plans: make([]dto.PlanSummaryResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.PlanSummaryResponse{
			PlanID:           p.ID.String(),
			Mode:             string(p.Mode),
			Grid:             dto.GridResponse{Width: p.Grid.Width, Height: p.Grid.Height},
			RouteCount:       p.RouteCount,
			AverageRouteSize: p.AverageRouteSize,
			CreatedAt:        p.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one persisted plan at /plans/{id}.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "plan persistence is not configured")
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/plans/"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := h.Repo.GetPlan(r.Context(), id)
	if errors.Is(err, domain.ErrPlanNotFound) {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		log.Printf("req_id=%s get plan failed: plan_id=%s err=%v", obs.RequestID(r.Context()), id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := toPlanResponse(plan)
	res.Persisted = true
	writeJSON(w, r, http.StatusOK, res)
}

func toPlanResponse(p *domain.PlanResult) dto.PlanResponse {
	res := dto.PlanResponse{
		PlanID:           p.ID.String(),
		Mode:             string(p.Mode),
		Grid:             dto.GridResponse{Width: p.Grid.Width, Height: p.Grid.Height},
		BudgetMinutes:    p.BudgetMinutes,
		Centers:          make([]int, 0, len(p.Centers)),
		Routes:           make([]dto.RouteResponse, 0, len(p.Routes)),
		RouteCount:       p.RouteCount(),
		AverageRouteSize: p.AverageRouteSize(),
		RouteByPoint:     make(map[int]int, p.Grid.Size()),
		CreatedAt:        p.CreatedAt,
	}
	for _, c := range p.Centers {
		res.Centers = append(res.Centers, int(c))
	}
	for i, rp := range p.Routes {
		stops := make([]int, 0, len(rp.Stops))
		for _, s := range rp.Stops {
			stops = append(stops, int(s))
		}
		res.Routes = append(res.Routes, dto.RouteResponse{
			Index:         i,
			Center:        int(rp.Center),
			Stops:         stops,
			Path:          render.FormatRoute(rp.Stops),
			TotalDistance: rp.TotalDistance,
			TotalMinutes:  rp.TotalMinutes,
		})
	}
	for pt, idx := range p.RouteIndexByPoint() {
		res.RouteByPoint[int(pt)] = idx
	}
	return res
}
