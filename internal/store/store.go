// Package store is the data layer. Every notes query is scoped by owner id so
// per-user isolation holds even if a handler forgets to check.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amke0501/Private-Notes-App/internal/models"
)

var (
	// ErrEmailTaken is returned when signup hits the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNotFound covers both a missing row and a row owned by someone else.
	// The two cases are indistinguishable to callers so note ids cannot be
	// probed for existence.
	ErrNotFound = errors.New("note not found or access denied")
)

type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
}

type NoteStore interface {
	ListNotes(ctx context.Context, ownerID string) ([]models.Note, error)
	CreateNote(ctx context.Context, ownerID, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, ownerID, id, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, ownerID, id string) error
}

// SQLStore implements UserStore and NoteStore over database/sql. The SQL uses
// `?` placeholders so the same statements run on sqlite and mysql.
type SQLStore struct {
	db *sql.DB
}

func New(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
