// Package storage owns durable persistence of users, folders and notes.
// Every folder/note accessor is scoped by the owning user id in the same
// statement as the entity id, so ownership can never race with the
// mutation it guards.
package storage

import (
	"context"

	"github.com/mkarlsen/noteservice/internal/models"
)

// Storage is the persistence contract. Implementations return
// apperr.KindNotFound when an entity is absent or owned by another user
// (the two cases are indistinguishable on purpose), apperr.KindDuplicate
// on an email uniqueness conflict, and apperr.KindTransient when the
// backend is unreachable or the context deadline expires.
type Storage interface {
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)

	GetFolders(ctx context.Context, userID int) ([]models.Folder, error)
	GetFolder(ctx context.Context, id, userID int) (models.Folder, error)
	CreateFolder(ctx context.Context, userID int, name string) (models.Folder, error)
	UpdateFolder(ctx context.Context, id, userID int, name string) (models.Folder, error)
	// DeleteFolder removes the folder and all notes it contains in one
	// transaction. No failure path may leave orphaned notes behind.
	DeleteFolder(ctx context.Context, id, userID int) error

	GetNotes(ctx context.Context, folderID, userID int) ([]models.Note, error)
	GetNote(ctx context.Context, id, userID int) (models.Note, error)
	CreateNote(ctx context.Context, userID, folderID int, title, content string) (models.Note, error)
	// UpdateNote applies the non-nil fields of patch and bumps updated_at.
	UpdateNote(ctx context.Context, id, userID int, patch models.NotePatch) (models.Note, error)
	DeleteNote(ctx context.Context, id, userID int) error
}
