package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/shoalhq/shoal/internal/auth"
)

// stateCookieName carries the OAuth state value between the login redirect
// and the provider callback.
const stateCookieName = "shoal_oauth_state"

// stateTTL bounds how long a login attempt may take.
const stateTTL = 10 * time.Minute

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.google.Enabled() {
		s.writeError(w, http.StatusServiceUnavailable, "sign-in is not configured")
		return
	}

	state, err := newState()
	if err != nil {
		s.logger.Error("generate oauth state", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to start sign-in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.google.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.google.Enabled() {
		s.writeError(w, http.StatusServiceUnavailable, "sign-in is not configured")
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		s.writeError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		s.writeError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	identity, err := s.google.Exchange(r.Context(), code)
	if err != nil {
		s.logger.Error("oauth exchange", "error", err)
		s.writeError(w, http.StatusBadGateway, "sign-in failed")
		return
	}

	user, err := s.store.UpsertUserByEmail(r.Context(), identity.Email, identity.Name)
	if err != nil {
		s.logger.Error("upsert user", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		s.logger.Error("issue session", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.sessions.SetCookie(w, token)

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/auth", MaxAge: -1})

	s.logger.Info("user signed in", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

// newState generates a random hex state value for the OAuth flow.
func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
