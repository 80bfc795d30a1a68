// Package handlers exposes the JSON REST surface: auth, folders and
// notes. Handlers translate request shape, delegate every decision to
// the service layer and map taxonomy errors onto status codes.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/service"
	"github.com/mkarlsen/noteservice/internal/session"
)

type API struct {
	svc        *service.Service
	sessions   session.Store
	log        zerolog.Logger
	sessionTTL time.Duration
	dbTimeout  time.Duration
}

func NewAPI(svc *service.Service, sessions session.Store, log zerolog.Logger, sessionTTL, dbTimeout time.Duration) *API {
	return &API{
		svc:        svc,
		sessions:   sessions,
		log:        log,
		sessionTTL: sessionTTL,
		dbTimeout:  dbTimeout,
	}
}

// requestContext bounds every persistence call behind a request.
func (a *API) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), a.dbTimeout)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the taxonomy onto HTTP statuses. Internal and
// transient causes are logged with full detail and never echoed.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)

	var status int
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindDuplicate:
		status = http.StatusConflict
	case apperr.KindTransient:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	if kind == apperr.KindInternal || kind == apperr.KindTransient {
		a.log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	writeJSON(w, status, map[string]string{"error": apperr.PublicMessage(err)})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}
