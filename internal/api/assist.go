package api

import (
	"net/http"
	"strings"
)

type askResponse struct {
	Answer string `json:"answer"`
}

// handleAsk answers free-form aquarium care questions via the configured
// assistant provider. The endpoint always returns 200 with an answer string;
// provider failures are folded into the answer.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	question := strings.TrimSpace(r.URL.Query().Get("question"))
	s.writeJSON(w, http.StatusOK, askResponse{
		Answer: s.assistant.Ask(r.Context(), question),
	})
}
