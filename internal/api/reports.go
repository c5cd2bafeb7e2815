package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shoalhq/shoal/internal/compat"
	"github.com/shoalhq/shoal/internal/model"
)

// downloadReportRequest is the JSON body for POST /v1/reports.
type downloadReportRequest struct {
	Format     string            `json:"format"`
	Selections []model.Selection `json:"selections"`
}

// handleDownloadReport evaluates a selection and streams it back as a
// downloadable document in the requested format.
func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	var req downloadReportRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "csv"
	}

	renderer, err := s.reports.Resolve(format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "unknown format")
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
		s.logger.Error("evaluate report", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to evaluate report")
		return
	}

	now := time.Now().UTC()
	body, err := renderer.Render(result, now)
	if err != nil {
		s.logger.Error("render report", "format", format, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	reportsRenderedTotal.WithLabelValues(format).Inc()

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", renderer.Filename(now)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("write report body", "error", err)
	}
}
