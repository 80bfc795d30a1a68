package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mkarlsen/noteservice/internal/apperr"
	"github.com/mkarlsen/noteservice/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	pqUniqueViolation = "23505"
	pqConnectionClass = "08"
)

// SQLStorage implements Storage on Postgres.
type SQLStorage struct {
	db *sqlx.DB
}

func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

// mapError translates driver errors into the taxonomy. notFoundMsg is
// used for sql.ErrNoRows so callers get an entity-specific message.
func mapError(err error, notFoundMsg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(notFoundMsg)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Transient("storage timed out", err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == pqUniqueViolation {
			return apperr.Duplicate("email already registered")
		}
		if strings.HasPrefix(string(pqErr.Code), pqConnectionClass) {
			return apperr.Transient("storage unavailable", err)
		}
	}
	return apperr.Internal("storage query failed", err)
}

func (s *SQLStorage) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	query, args, err := psql.Insert("users").
		Columns("email", "password").
		Values(email, passwordHash).
		Suffix("RETURNING id, email, password, created_at").
		ToSql()
	if err != nil {
		return models.User{}, apperr.Internal("build user insert", err)
	}

	var u models.User
	if err := s.db.GetContext(ctx, &u, query, args...); err != nil {
		return models.User{}, mapError(err, "user not found")
	}
	return u, nil
}

func (s *SQLStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query, args, err := psql.Select("id", "email", "password", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return models.User{}, apperr.Internal("build user select", err)
	}

	var u models.User
	if err := s.db.GetContext(ctx, &u, query, args...); err != nil {
		return models.User{}, mapError(err, "user not found")
	}
	return u, nil
}

func (s *SQLStorage) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query, args, err := psql.Select("id", "email", "password", "created_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.User{}, apperr.Internal("build user select", err)
	}

	var u models.User
	if err := s.db.GetContext(ctx, &u, query, args...); err != nil {
		return models.User{}, mapError(err, "user not found")
	}
	return u, nil
}

func (s *SQLStorage) GetFolders(ctx context.Context, userID int) ([]models.Folder, error) {
	query, args, err := psql.Select("id", "name", "user_id", "created_at", "updated_at").
		From("folders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, apperr.Internal("build folders select", err)
	}

	folders := []models.Folder{}
	if err := s.db.SelectContext(ctx, &folders, query, args...); err != nil {
		return nil, mapError(err, "folder not found")
	}
	return folders, nil
}

func (s *SQLStorage) GetFolder(ctx context.Context, id, userID int) (models.Folder, error) {
	query, args, err := psql.Select("id", "name", "user_id", "created_at", "updated_at").
		From("folders").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Folder{}, apperr.Internal("build folder select", err)
	}

	var f models.Folder
	if err := s.db.GetContext(ctx, &f, query, args...); err != nil {
		return models.Folder{}, mapError(err, "folder not found")
	}
	return f, nil
}

func (s *SQLStorage) CreateFolder(ctx context.Context, userID int, name string) (models.Folder, error) {
	query, args, err := psql.Insert("folders").
		Columns("name", "user_id").
		Values(name, userID).
		Suffix("RETURNING id, name, user_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Folder{}, apperr.Internal("build folder insert", err)
	}

	var f models.Folder
	if err := s.db.GetContext(ctx, &f, query, args...); err != nil {
		return models.Folder{}, mapError(err, "folder not found")
	}
	return f, nil
}

func (s *SQLStorage) UpdateFolder(ctx context.Context, id, userID int, name string) (models.Folder, error) {
	query, args, err := psql.Update("folders").
		Set("name", name).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id, name, user_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Folder{}, apperr.Internal("build folder update", err)
	}

	var f models.Folder
	if err := s.db.GetContext(ctx, &f, query, args...); err != nil {
		return models.Folder{}, mapError(err, "folder not found")
	}
	return f, nil
}

func (s *SQLStorage) DeleteFolder(ctx context.Context, id, userID int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError(err, "folder not found")
	}
	defer tx.Rollback()

	// Notes first, folder second; the folder delete is the ownership
	// check, so zero rows affected rolls the note deletes back too.
	notesQ, notesArgs, err := psql.Delete("notes").
		Where(sq.Eq{"folder_id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return apperr.Internal("build notes delete", err)
	}
	if _, err := tx.ExecContext(ctx, notesQ, notesArgs...); err != nil {
		return mapError(err, "folder not found")
	}

	folderQ, folderArgs, err := psql.Delete("folders").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return apperr.Internal("build folder delete", err)
	}
	res, err := tx.ExecContext(ctx, folderQ, folderArgs...)
	if err != nil {
		return mapError(err, "folder not found")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal("folder delete rows affected", err)
	}
	if affected == 0 {
		return apperr.NotFound("folder not found")
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, "folder not found")
	}
	return nil
}

func (s *SQLStorage) GetNotes(ctx context.Context, folderID, userID int) ([]models.Note, error) {
	query, args, err := psql.Select("id", "title", "content", "folder_id", "user_id", "created_at", "updated_at").
		From("notes").
		Where(sq.Eq{"folder_id": folderID, "user_id": userID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, apperr.Internal("build notes select", err)
	}

	notes := []models.Note{}
	if err := s.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, mapError(err, "note not found")
	}
	return notes, nil
}

func (s *SQLStorage) GetNote(ctx context.Context, id, userID int) (models.Note, error) {
	query, args, err := psql.Select("id", "title", "content", "folder_id", "user_id", "created_at", "updated_at").
		From("notes").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Note{}, apperr.Internal("build note select", err)
	}

	var n models.Note
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return models.Note{}, mapError(err, "note not found")
	}
	return n, nil
}

func (s *SQLStorage) CreateNote(ctx context.Context, userID, folderID int, title, content string) (models.Note, error) {
	query, args, err := psql.Insert("notes").
		Columns("title", "content", "folder_id", "user_id").
		Values(title, content, folderID, userID).
		Suffix("RETURNING id, title, content, folder_id, user_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Note{}, apperr.Internal("build note insert", err)
	}

	var n models.Note
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return models.Note{}, mapError(err, "note not found")
	}
	return n, nil
}

func (s *SQLStorage) UpdateNote(ctx context.Context, id, userID int, patch models.NotePatch) (models.Note, error) {
	uq := psql.Update("notes").
		Set("updated_at", sq.Expr("NOW()"))

	if patch.Title != nil {
		uq = uq.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		uq = uq.Set("content", *patch.Content)
	}
	if patch.FolderID != nil {
		uq = uq.Set("folder_id", *patch.FolderID)
	}

	query, args, err := uq.
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id, title, content, folder_id, user_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Note{}, apperr.Internal("build note update", err)
	}

	var n models.Note
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return models.Note{}, mapError(err, "note not found")
	}
	return n, nil
}

func (s *SQLStorage) DeleteNote(ctx context.Context, id, userID int) error {
	query, args, err := psql.Delete("notes").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return apperr.Internal("build note delete", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "note not found")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal("note delete rows affected", err)
	}
	if affected == 0 {
		return apperr.NotFound("note not found")
	}
	return nil
}
