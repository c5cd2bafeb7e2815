package api

import "net/http"

// statsResponse is the JSON response for GET /v1/stats.
type statsResponse struct {
	TotalPlans    int            `json:"total_plans"`
	AvgScore      float64        `json:"avg_score"`
	AvgTankLitres float64        `json:"avg_tank_l"`
	ByScoreBand   map[string]int `json:"by_score_band"`
	DistinctUsers int            `json:"distinct_users"`
	SpeciesCount  int            `json:"species_count"`
	Assistant     string         `json:"assistant"`
	ReportFormats []string       `json:"report_formats"`
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetPlanStats(r.Context())
	if err != nil {
		s.logger.Error("get plan stats", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	s.writeJSON(w, http.StatusOK, statsResponse{
		TotalPlans:    stats.Total,
		AvgScore:      stats.AvgScore,
		AvgTankLitres: stats.AvgTankLitres,
		ByScoreBand:   stats.CountByScore,
		DistinctUsers: stats.DistinctUsers,
		SpeciesCount:  s.catalog.Len(),
		Assistant:     s.assistant.ProviderName(),
		ReportFormats: s.reports.Formats(),
	})
}
