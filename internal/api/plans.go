package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shoalhq/shoal/internal/auth"
	"github.com/shoalhq/shoal/internal/compat"
	"github.com/shoalhq/shoal/internal/model"
	"github.com/shoalhq/shoal/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxBodySize      = 1 << 20 // 1 MB
)

// createPlanRequest is the JSON body for POST /v1/plans.
type createPlanRequest struct {
	Selections []model.Selection `json:"selections"`
}

// planResponse combines the persisted plan with the full evaluation detail.
type planResponse struct {
	Plan   *model.Plan    `json:"plan"`
	Result *compat.Result `json:"result"`
}

// listPlansResponse wraps the paginated list response.
type listPlansResponse struct {
	Plans  []*model.Plan `json:"plans"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createPlanRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len(req.Selections) == 0 {
		s.writeError(w, http.StatusBadRequest, "selections are required")
		return
	}

	result, err := compat.Evaluate(s.catalog, req.Selections)
	if errors.Is(err, compat.ErrNoSpecies) {
		s.writeError(w, http.StatusBadRequest, "selected fishes not found; please choose from the list")
		return
	}
	if err != nil {
		s.logger.Error("evaluate plan", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to evaluate plan")
		return
	}

	plan := &model.Plan{
		ID:          model.NewID(),
		UserID:      user.ID,
		Selections:  normalizedSelections(result),
		TankLitres:  result.TankLitres,
		TankGallons: result.TankGallons,
		Score:       result.Score,
		Warnings:    result.Warnings,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.SavePlan(r.Context(), plan); err != nil {
		s.logger.Error("save plan", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save plan")
		return
	}

	plansEvaluatedTotal.Inc()
	s.writeJSON(w, http.StatusCreated, planResponse{Plan: plan, Result: result})
}

// normalizedSelections persists the selections as resolved: unknown IDs
// dropped and counts clamped, matching what was actually evaluated.
func normalizedSelections(result *compat.Result) []model.Selection {
	out := make([]model.Selection, 0, len(result.Species))
	for _, f := range result.Species {
		out = append(out, model.Selection{SpeciesID: f.ID, Count: f.Count})
	}
	return out
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	plan, err := s.store.GetPlan(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		s.logger.Error("get plan", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get plan")
		return
	}

	// Plans are private to their owner.
	if plan.UserID != user.ID {
		s.writeError(w, http.StatusNotFound, "plan not found")
		return
	}

	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	plan, err := s.store.LatestPlan(r.Context(), user.ID)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no plans saved yet")
		return
	}
	if err != nil {
		s.logger.Error("get latest plan", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get latest plan")
		return
	}

	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := parseIntQuery(r, "limit", defaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	plans, total, err := s.store.ListPlans(r.Context(), user.ID, limit, offset)
	if err != nil {
		s.logger.Error("list plans", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list plans")
		return
	}

	if plans == nil {
		plans = []*model.Plan{}
	}

	s.writeJSON(w, http.StatusOK, listPlansResponse{
		Plans:  plans,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
