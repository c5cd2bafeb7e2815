package api

import "net/http"

// handleSearchSpecies serves the species picker. With ?id= it returns the
// single matching item for prepopulating a saved selection; otherwise it
// pages through the catalog filtered by ?q=.
func (s *Server) handleSearchSpecies(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		s.writeJSON(w, http.StatusOK, s.catalog.Lookup(id))
		return
	}

	q := r.URL.Query().Get("q")
	page := parseIntQuery(r, "page", 1)

	s.writeJSON(w, http.StatusOK, s.catalog.Search(q, page))
}
