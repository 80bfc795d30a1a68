package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkarlsen/noteservice/internal/auth"
	"github.com/mkarlsen/noteservice/internal/middleware"
)

// Router builds the full HTTP surface. Auth endpoints are public; every
// folder/note route sits behind the session middleware.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(a.log))

	r.HandleFunc("/api/auth/register", a.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", a.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", a.Logout).Methods(http.MethodPost)

	requireSession := auth.SessionMiddleware(a.sessions, a.log)
	r.Handle("/api/auth/me", requireSession(http.HandlerFunc(a.Me))).Methods(http.MethodGet)

	s := r.PathPrefix("/api").Subrouter()
	s.Use(requireSession)

	s.HandleFunc("/folders", a.ListFolders).Methods(http.MethodGet)
	s.HandleFunc("/folders", a.CreateFolder).Methods(http.MethodPost)
	s.HandleFunc("/folders/{id}", a.RenameFolder).Methods(http.MethodPut, http.MethodPatch)
	s.HandleFunc("/folders/{id}", a.DeleteFolder).Methods(http.MethodDelete)

	s.HandleFunc("/notes/folder/{folderId}", a.ListNotes).Methods(http.MethodGet)
	s.HandleFunc("/notes", a.CreateNote).Methods(http.MethodPost)
	s.HandleFunc("/notes/{id}", a.GetNote).Methods(http.MethodGet)
	s.HandleFunc("/notes/{id}", a.UpdateNote).Methods(http.MethodPatch)
	s.HandleFunc("/notes/{id}", a.DeleteNote).Methods(http.MethodDelete)

	return r
}
