package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/auth"
)

// staticStore answers every Get with a fixed result, standing in for a
// session backend in a known state.
type staticStore struct {
	userID int
	err    error
}

func (s *staticStore) Create(context.Context, int) (string, error) { return "token", nil }

func (s *staticStore) Get(context.Context, string) (int, error) { return s.userID, s.err }

func (s *staticStore) Destroy(context.Context, string) error { return nil }

func runMiddleware(t *testing.T, store *staticStore, withCookie bool) (*httptest.ResponseRecorder, int) {
	t.Helper()

	var seenUserID int
	handler := auth.SessionMiddleware(store, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/folders", nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "token"})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seenUserID
}

func TestSessionMiddleware_ValidSession(t *testing.T) {
	rec, userID := runMiddleware(t, &staticStore{userID: 42}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 42, userID)
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	rec, _ := runMiddleware(t, &staticStore{userID: 42}, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_UnknownToken(t *testing.T) {
	store := &staticStore{err: apperr.Unauthenticated("not authenticated")}
	rec, _ := runMiddleware(t, store, true)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A store outage is not an authentication verdict; the client must not
// be told to log in again.
func TestSessionMiddleware_StoreOutageIs503(t *testing.T) {
	store := &staticStore{err: apperr.Transient("session store unavailable", context.DeadlineExceeded)}
	rec, _ := runMiddleware(t, store, true)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "temporarily unavailable")
}
