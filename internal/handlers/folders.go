package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/auth"
)

type folderPayload struct {
	Name string `json:"name"`
}

// pathID parses a numeric path parameter, rejecting malformed ids
// before they reach the service.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

func (a *API) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	ctx, cancel := a.requestContext(r)
	defer cancel()

	folders, err := a.svc.ListFolders(ctx, userID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (a *API) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var payload folderPayload
	if err := decodeJSON(r, &payload); err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	folder, err := a.svc.CreateFolder(ctx, userID, payload.Name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (a *API) RenameFolder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	folderID, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var payload folderPayload
	if err := decodeJSON(r, &payload); err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	folder, err := a.svc.RenameFolder(ctx, userID, folderID, payload.Name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (a *API) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	folderID, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	if err := a.svc.DeleteFolder(ctx, userID, folderID); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "folder deleted"})
}
