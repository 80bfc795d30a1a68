package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/session"
)

// CookieName is the session cookie set on login/register.
const CookieName = "session"

type key int

const userIDKey key = 0

// SessionMiddleware resolves the session cookie against the store and
// puts the acting user's id on the request context. Requests without a
// valid session are rejected with a 401 JSON body; a store failure is
// not an authentication verdict and surfaces as 503 instead, with the
// cause logged server-side.
func SessionMiddleware(sessions session.Store, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			userID, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				if apperr.IsKind(err, apperr.KindUnauthenticated) {
					unauthorized(w)
					return
				}
				log.Error().
					Err(err).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("session lookup failed")
				unavailable(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"not authenticated"}`))
}

func unavailable(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(`{"error":"service temporarily unavailable"}`))
}

// UserIDFromContext returns the acting user's id, or 0 when the request
// did not pass through SessionMiddleware.
func UserIDFromContext(ctx context.Context) int {
	userID, ok := ctx.Value(userIDKey).(int)
	if !ok {
		return 0
	}
	return userID
}
