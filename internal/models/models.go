package models

import "time"

type User struct {
	ID        int       `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// PublicUser is the identity shape returned by the auth endpoints. The
// password hash never leaves the server.
type PublicUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

type Folder struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	UserID    int       `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type Note struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	FolderID  int       `db:"folder_id" json:"folderId"`
	UserID    int       `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NotePatch carries a partial note update. Nil fields are left untouched.
type NotePatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	FolderID *int    `json:"folderId"`
}
