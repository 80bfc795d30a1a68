// Package service holds the business rules between the HTTP handlers
// and persistence: input validation, password hashing, and the
// ownership checks a client must never be trusted with.
package service

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/models"
	"github.com/mkarlsen/noteservice/internal/storage"
)

const minPasswordLen = 6

type Service struct {
	store storage.Storage
}

func New(store storage.Storage) *Service {
	return &Service{store: store}
}

// Register validates the credentials, hashes the password and creates
// the user. A duplicate email surfaces as apperr.KindDuplicate without
// touching the existing account.
func (s *Service) Register(ctx context.Context, email, password string) (models.PublicUser, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return models.PublicUser{}, apperr.Validation("invalid email address")
	}
	if len(password) < minPasswordLen {
		return models.PublicUser{}, apperr.Validation("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, apperr.Internal("hash password", err)
	}

	u, err := s.store.CreateUser(ctx, email, string(hash))
	if err != nil {
		return models.PublicUser{}, err
	}
	return u.Public(), nil
}

// Login verifies the credentials. Unknown email and wrong password
// return the same error so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (models.PublicUser, error) {
	invalid := apperr.Unauthenticated("invalid email or password")

	u, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return models.PublicUser{}, invalid
		}
		return models.PublicUser{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return models.PublicUser{}, invalid
	}
	return u.Public(), nil
}

// CurrentUser resolves the acting user's public identity.
func (s *Service) CurrentUser(ctx context.Context, userID int) (models.PublicUser, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *Service) ListFolders(ctx context.Context, userID int) ([]models.Folder, error) {
	return s.store.GetFolders(ctx, userID)
}

func (s *Service) CreateFolder(ctx context.Context, userID int, name string) (models.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return models.Folder{}, apperr.Validation("folder name is required")
	}
	return s.store.CreateFolder(ctx, userID, name)
}

func (s *Service) RenameFolder(ctx context.Context, userID, folderID int, name string) (models.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return models.Folder{}, apperr.Validation("folder name is required")
	}
	return s.store.UpdateFolder(ctx, folderID, userID, name)
}

func (s *Service) DeleteFolder(ctx context.Context, userID, folderID int) error {
	return s.store.DeleteFolder(ctx, folderID, userID)
}

// ListNotes returns the notes the user owns inside folderID. An unknown
// folder yields an empty slice, not an error.
func (s *Service) ListNotes(ctx context.Context, userID, folderID int) ([]models.Note, error) {
	return s.store.GetNotes(ctx, folderID, userID)
}

func (s *Service) GetNote(ctx context.Context, userID, noteID int) (models.Note, error) {
	return s.store.GetNote(ctx, noteID, userID)
}

func (s *Service) CreateNote(ctx context.Context, userID, folderID int, title, content string) (models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return models.Note{}, apperr.Validation("note title is required")
	}
	// The target folder must exist and belong to the caller.
	if _, err := s.store.GetFolder(ctx, folderID, userID); err != nil {
		return models.Note{}, err
	}
	return s.store.CreateNote(ctx, userID, folderID, title, content)
}

// UpdateNote applies a partial update. A folder move is only allowed
// into a folder the caller owns, keeping note and folder owners equal.
func (s *Service) UpdateNote(ctx context.Context, userID, noteID int, patch models.NotePatch) (models.Note, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Note{}, apperr.Validation("note title is required")
	}
	if patch.FolderID != nil {
		if _, err := s.store.GetFolder(ctx, *patch.FolderID, userID); err != nil {
			return models.Note{}, err
		}
	}
	return s.store.UpdateNote(ctx, noteID, userID, patch)
}

func (s *Service) DeleteNote(ctx context.Context, userID, noteID int) error {
	return s.store.DeleteNote(ctx, noteID, userID)
}
