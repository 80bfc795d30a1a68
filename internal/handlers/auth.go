package handlers

import (
	"net/http"

	"github.com/mkarlsen/noteservice/internal/auth"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(a.sessionTTL.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	user, err := a.svc.Register(ctx, creds.Email, creds.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	token, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.setSessionCookie(w, token)

	writeJSON(w, http.StatusOK, user)
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	user, err := a.svc.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	token, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.setSessionCookie(w, token)

	writeJSON(w, http.StatusOK, user)
}

// Logout destroys the session. Unknown or missing tokens still succeed,
// but a store failure surfaces as 503 and keeps the cookie, so the
// server-side session is never silently left alive past the response.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		ctx, cancel := a.requestContext(r)
		defer cancel()
		if err := a.sessions.Destroy(ctx, cookie.Value); err != nil {
			a.writeError(w, r, err)
			return
		}
	}
	clearSessionCookie(w)

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me runs behind the session middleware; reaching it means the session
// resolved. The identity is looked up so the response matches the
// register/login shape.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	ctx, cancel := a.requestContext(r)
	defer cancel()

	user, err := a.svc.CurrentUser(ctx, userID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
