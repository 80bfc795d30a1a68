package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/models"
	"github.com/mkarlsen/noteservice/internal/service"
	"github.com/mkarlsen/noteservice/internal/storage"
)

func newService(t *testing.T) (*service.Service, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	return service.New(store), store
}

func registerUser(t *testing.T, svc *service.Service, email string) models.PublicUser {
	t.Helper()
	u, err := svc.Register(context.Background(), email, "secret123")
	require.NoError(t, err)
	return u
}

func ptrString(s string) *string { return &s }

func ptrInt(i int) *int { return &i }

func TestRegister_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "secret123")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Register(ctx, "alice@example.com", "short")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestRegister_DuplicateEmailKeepsExistingHash(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	registerUser(t, svc, "alice@example.com")
	before, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "different-password")
	require.True(t, apperr.IsKind(err, apperr.KindDuplicate))

	after, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, before.Password, after.Password)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	registerUser(t, svc, "alice@example.com")

	_, errUnknown := svc.Login(ctx, "nobody@example.com", "secret123")
	_, errWrongPass := svc.Login(ctx, "alice@example.com", "wrong-password")

	require.True(t, apperr.IsKind(errUnknown, apperr.KindUnauthenticated))
	require.True(t, apperr.IsKind(errWrongPass, apperr.KindUnauthenticated))
	require.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	registered := registerUser(t, svc, "alice@example.com")

	u, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, registered, u)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	registered := registerUser(t, svc, "alice@example.com")

	u, err := svc.CurrentUser(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, registered, u)

	_, err = svc.CurrentUser(ctx, registered.ID+100)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestFolders_CRUD(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")

	_, err := svc.CreateFolder(ctx, alice.ID, "  ")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	work, err := svc.CreateFolder(ctx, alice.ID, "Work")
	require.NoError(t, err)
	require.Equal(t, "Work", work.Name)
	require.Equal(t, alice.ID, work.UserID)

	renamed, err := svc.RenameFolder(ctx, alice.ID, work.ID, "Projects")
	require.NoError(t, err)
	require.Equal(t, "Projects", renamed.Name)
	require.False(t, renamed.UpdatedAt.Before(work.UpdatedAt))

	_, err = svc.RenameFolder(ctx, alice.ID, work.ID, "")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	folders, err := svc.ListFolders(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, folders, 1)

	require.NoError(t, svc.DeleteFolder(ctx, alice.ID, work.ID))
	err = svc.DeleteFolder(ctx, alice.ID, work.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOwnershipIsolation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")

	folder, err := svc.CreateFolder(ctx, alice.ID, "Private")
	require.NoError(t, err)
	note, err := svc.CreateNote(ctx, alice.ID, folder.ID, "Secret", "do not share")
	require.NoError(t, err)

	// Bob holds valid identifiers but owns neither entity.
	_, err = svc.GetNote(ctx, bob.ID, note.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.RenameFolder(ctx, bob.ID, folder.ID, "Mine now")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.DeleteFolder(ctx, bob.ID, folder.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.UpdateNote(ctx, bob.ID, note.ID, models.NotePatch{Title: ptrString("hijack")})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.DeleteNote(ctx, bob.ID, note.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	notes, err := svc.ListNotes(ctx, bob.ID, folder.ID)
	require.NoError(t, err)
	require.Empty(t, notes)

	// Everything still intact for the owner.
	got, err := svc.GetNote(ctx, alice.ID, note.ID)
	require.NoError(t, err)
	require.Equal(t, "Secret", got.Title)
	require.Equal(t, "do not share", got.Content)
}

func TestDeleteFolder_CascadesToNotes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")

	folder, err := svc.CreateFolder(ctx, alice.ID, "Work")
	require.NoError(t, err)
	first, err := svc.CreateNote(ctx, alice.ID, folder.ID, "One", "")
	require.NoError(t, err)
	second, err := svc.CreateNote(ctx, alice.ID, folder.ID, "Two", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFolder(ctx, alice.ID, folder.ID))

	notes, err := svc.ListNotes(ctx, alice.ID, folder.ID)
	require.NoError(t, err)
	require.Empty(t, notes)

	for _, id := range []int{first.ID, second.ID} {
		_, err := svc.GetNote(ctx, alice.ID, id)
		require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	}
}

func TestCreateNote_FidelityAndValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")

	folder, err := svc.CreateFolder(ctx, alice.ID, "Work")
	require.NoError(t, err)

	_, err = svc.CreateNote(ctx, alice.ID, folder.ID, "", "body")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateNote(ctx, alice.ID, folder.ID+100, "Title", "body")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	created, err := svc.CreateNote(ctx, alice.ID, folder.ID, "Meeting notes", "agenda")
	require.NoError(t, err)

	got, err := svc.GetNote(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)
	require.Equal(t, created.Content, got.Content)
	require.Equal(t, created.FolderID, got.FolderID)
}

func TestUpdateNote_PartialPreservesFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")

	folder, err := svc.CreateFolder(ctx, alice.ID, "Work")
	require.NoError(t, err)
	note, err := svc.CreateNote(ctx, alice.ID, folder.ID, "Original", "body")
	require.NoError(t, err)

	updated, err := svc.UpdateNote(ctx, alice.ID, note.ID, models.NotePatch{Title: ptrString("X")})
	require.NoError(t, err)
	require.Equal(t, "X", updated.Title)
	require.Equal(t, "body", updated.Content)
	require.Equal(t, folder.ID, updated.FolderID)

	_, err = svc.UpdateNote(ctx, alice.ID, note.ID, models.NotePatch{Title: ptrString("  ")})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateNote_FolderMoveRequiresOwnership(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := registerUser(t, svc, "alice@example.com")
	bob := registerUser(t, svc, "bob@example.com")

	aliceFolder, err := svc.CreateFolder(ctx, alice.ID, "Alice stuff")
	require.NoError(t, err)
	bobFolder, err := svc.CreateFolder(ctx, bob.ID, "Bob stuff")
	require.NoError(t, err)

	note, err := svc.CreateNote(ctx, alice.ID, aliceFolder.ID, "Note", "")
	require.NoError(t, err)

	// Moving into someone else's folder must fail before any write.
	_, err = svc.UpdateNote(ctx, alice.ID, note.ID, models.NotePatch{FolderID: ptrInt(bobFolder.ID)})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	got, err := svc.GetNote(ctx, alice.ID, note.ID)
	require.NoError(t, err)
	require.Equal(t, aliceFolder.ID, got.FolderID)

	// A move between the caller's own folders works.
	second, err := svc.CreateFolder(ctx, alice.ID, "Archive")
	require.NoError(t, err)
	moved, err := svc.UpdateNote(ctx, alice.ID, note.ID, models.NotePatch{FolderID: ptrInt(second.ID)})
	require.NoError(t, err)
	require.Equal(t, second.ID, moved.FolderID)
}

func TestScenario_CreateFolderNoteUpdateFetch(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")

	work, err := svc.CreateFolder(ctx, alice.ID, "Work")
	require.NoError(t, err)

	plan, err := svc.CreateNote(ctx, alice.ID, work.ID, "Plan", "")
	require.NoError(t, err)

	_, err = svc.UpdateNote(ctx, alice.ID, plan.ID, models.NotePatch{Content: ptrString("Draft v1")})
	require.NoError(t, err)

	got, err := svc.GetNote(ctx, alice.ID, plan.ID)
	require.NoError(t, err)
	require.Equal(t, "Plan", got.Title)
	require.Equal(t, "Draft v1", got.Content)
}

func TestListNotes_UnknownFolderIsEmptyNotError(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	alice := registerUser(t, svc, "alice@example.com")

	notes, err := svc.ListNotes(ctx, alice.ID, 9999)
	require.NoError(t, err)
	require.Empty(t, notes)
}
