package api

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Species int    `json:"species"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Species: s.catalog.Len(),
	})
}
