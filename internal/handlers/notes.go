package handlers

import (
	"net/http"

	"github.com/mkarlsen/noteservice/internal/auth"
	"github.com/mkarlsen/noteservice/internal/models"
)

type createNotePayload struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	FolderID int     `json:"folderId"`
}

func (a *API) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	folderID, err := pathID(r, "folderId")
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	notes, err := a.svc.ListNotes(ctx, userID, folderID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (a *API) GetNote(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	noteID, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	note, err := a.svc.GetNote(ctx, userID, noteID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (a *API) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var payload createNotePayload
	if err := decodeJSON(r, &payload); err != nil {
		a.writeError(w, r, err)
		return
	}

	content := ""
	if payload.Content != nil {
		content = *payload.Content
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	note, err := a.svc.CreateNote(ctx, userID, payload.FolderID, payload.Title, content)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (a *API) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	noteID, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var patch models.NotePatch
	if err := decodeJSON(r, &patch); err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	note, err := a.svc.UpdateNote(ctx, userID, noteID, patch)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (a *API) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	noteID, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	ctx, cancel := a.requestContext(r)
	defer cancel()

	if err := a.svc.DeleteNote(ctx, userID, noteID); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}
