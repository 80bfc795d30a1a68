package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/models"
)

// MemoryStorage is the in-process Storage implementation used by tests
// and local development. Semantics mirror SQLStorage, including the
// all-or-nothing folder cascade.
type MemoryStorage struct {
	mu sync.RWMutex

	users   map[int]models.User
	folders map[int]models.Folder
	notes   map[int]models.Note

	nextUserID   int
	nextFolderID int
	nextNoteID   int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:        make(map[int]models.User),
		folders:      make(map[int]models.Folder),
		notes:        make(map[int]models.Note),
		nextUserID:   1,
		nextFolderID: 1,
		nextNoteID:   1,
	}
}

func (m *MemoryStorage) CreateUser(_ context.Context, email, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return models.User{}, apperr.Duplicate("email already registered")
		}
	}

	u := models.User{
		ID:        m.nextUserID,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}
	m.nextUserID++
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStorage) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperr.NotFound("user not found")
}

func (m *MemoryStorage) GetUserByID(_ context.Context, id int) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (m *MemoryStorage) GetFolders(_ context.Context, userID int) ([]models.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	folders := []models.Folder{}
	for _, f := range m.folders {
		if f.UserID == userID {
			folders = append(folders, f)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })
	return folders, nil
}

func (m *MemoryStorage) GetFolder(_ context.Context, id, userID int) (models.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.folders[id]
	if !ok || f.UserID != userID {
		return models.Folder{}, apperr.NotFound("folder not found")
	}
	return f, nil
}

func (m *MemoryStorage) CreateFolder(_ context.Context, userID int, name string) (models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	f := models.Folder{
		ID:        m.nextFolderID,
		Name:      name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextFolderID++
	m.folders[f.ID] = f
	return f, nil
}

func (m *MemoryStorage) UpdateFolder(_ context.Context, id, userID int, name string) (models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[id]
	if !ok || f.UserID != userID {
		return models.Folder{}, apperr.NotFound("folder not found")
	}
	f.Name = name
	f.UpdatedAt = time.Now().UTC()
	m.folders[id] = f
	return f, nil
}

func (m *MemoryStorage) DeleteFolder(_ context.Context, id, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.folders[id]
	if !ok || f.UserID != userID {
		return apperr.NotFound("folder not found")
	}
	for noteID, n := range m.notes {
		if n.FolderID == id && n.UserID == userID {
			delete(m.notes, noteID)
		}
	}
	delete(m.folders, id)
	return nil
}

func (m *MemoryStorage) GetNotes(_ context.Context, folderID, userID int) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	notes := []models.Note{}
	for _, n := range m.notes {
		if n.FolderID == folderID && n.UserID == userID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (m *MemoryStorage) GetNote(_ context.Context, id, userID int) (models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return models.Note{}, apperr.NotFound("note not found")
	}
	return n, nil
}

func (m *MemoryStorage) CreateNote(_ context.Context, userID, folderID int, title, content string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Same constraint the folders FK enforces in Postgres.
	f, ok := m.folders[folderID]
	if !ok || f.UserID != userID {
		return models.Note{}, apperr.NotFound("folder not found")
	}

	now := time.Now().UTC()
	n := models.Note{
		ID:        m.nextNoteID,
		Title:     title,
		Content:   content,
		FolderID:  folderID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextNoteID++
	m.notes[n.ID] = n
	return n, nil
}

func (m *MemoryStorage) UpdateNote(_ context.Context, id, userID int, patch models.NotePatch) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return models.Note{}, apperr.NotFound("note not found")
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.FolderID != nil {
		n.FolderID = *patch.FolderID
	}
	n.UpdatedAt = time.Now().UTC()
	m.notes[id] = n
	return n, nil
}

func (m *MemoryStorage) DeleteNote(_ context.Context, id, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return apperr.NotFound("note not found")
	}
	delete(m.notes, id)
	return nil
}
