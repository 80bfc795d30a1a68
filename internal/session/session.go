// Package session binds opaque tokens to authenticated user ids on the
// server side. Tokens are random uuids; nothing about the user is
// derivable from the cookie value.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkarlsen/noteservice/internal/apperr"
)

// Store is the session lifecycle contract. Get returns
// apperr.KindUnauthenticated for unknown or expired tokens; Destroy is
// idempotent.
type Store interface {
	Create(ctx context.Context, userID int) (string, error)
	Get(ctx context.Context, token string) (int, error)
	Destroy(ctx context.Context, token string) error
}

type memoryEntry struct {
	userID    int
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Used for tests and
// single-instance deployments without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, userID int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.sessions[token] = memoryEntry{
		userID:    userID,
		expiresAt: m.now().Add(m.ttl),
	}
	return token, nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[token]
	if !ok {
		return 0, apperr.Unauthenticated("not authenticated")
	}
	if m.now().After(entry.expiresAt) {
		delete(m.sessions, token)
		return 0, apperr.Unauthenticated("session expired")
	}
	return entry.userID, nil
}

func (m *MemoryStore) Destroy(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}
