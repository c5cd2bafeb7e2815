package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shoalhq/shoal/internal/model"
	"github.com/shoalhq/shoal/internal/store"
)

type stubUsers struct {
	user *model.User
	err  error
}

func (s *stubUsers) GetUser(ctx context.Context, id string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func requireHandler(t *testing.T, users UserGetter) (http.Handler, *Sessions) {
	t.Helper()
	sessions := NewSessions("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFrom(r.Context())
		if !ok {
			t.Error("UserFrom: no user on context")
		} else {
			w.Header().Set("X-User", u.Email)
		}
		w.WriteHeader(http.StatusOK)
	})
	return Require(sessions, users)(next), sessions
}

func TestRequireMissingCookie(t *testing.T) {
	h, _ := requireHandler(t, &stubUsers{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireBadToken(t *testing.T) {
	h, _ := requireHandler(t, &stubUsers{})

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireDeletedUser(t *testing.T) {
	h, sessions := requireHandler(t, &stubUsers{err: store.ErrNotFound})

	token, err := sessions.Issue("u_gone")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireStoreError(t *testing.T) {
	h, sessions := requireHandler(t, &stubUsers{err: errors.New("db locked")})

	token, err := sessions.Issue("u_1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRequireValidSession(t *testing.T) {
	user := &model.User{ID: "u_1", Email: "fern@example.com", Name: "Fern"}
	h, sessions := requireHandler(t, &stubUsers{user: user})

	token, err := sessions.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("X-User"); got != user.Email {
		t.Errorf("X-User = %q, want %q", got, user.Email)
	}
}
