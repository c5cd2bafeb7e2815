package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shoalhq/shoal/internal/model"
	"github.com/shoalhq/shoal/internal/store"
)

// UserGetter resolves a user ID to an account.
type UserGetter interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type contextKey struct{}

// UserFrom extracts the signed-in user from a request context.
func UserFrom(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(contextKey{}).(*model.User)
	return u, ok
}

// WithUser returns a context carrying the given user. Exposed for tests.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// Require returns middleware that resolves the session cookie to a user and
// stores it on the request context. Requests without a valid session get a
// 401 JSON error.
func Require(sessions *Sessions, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			userID, err := sessions.Verify(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				// A valid token for a deleted account is still unauthorized.
				unauthorized(w)
				return
			}
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "failed to resolve session"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
}
