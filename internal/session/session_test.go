package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/noteservice/internal/apperr"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, 42, userID)

	// Tokens are unique per session.
	other, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "no-such-token")
	require.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = store.Get(ctx, token)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	// Expired entries are dropped, not resurrected.
	store.now = time.Now
	_, err = store.Get(ctx, token)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestMemoryStore_DestroyIsIdempotent(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))
	require.NoError(t, store.Destroy(ctx, token))
	require.NoError(t, store.Destroy(ctx, "never-existed"))

	_, err = store.Get(ctx, token)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}
