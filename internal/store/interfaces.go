// Package store persists panel user accounts.
//
// [UserRepository] is the only contract the rest of the application sees.
// It has an in-memory implementation for tests and single-process
// deployments, and a database/sql implementation that serves both SQLite
// and PostgreSQL. [NewStorages] picks one from DATABASE_URL.
package store

import (
	"context"

	"github.com/MKhiriev/admin-panel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository reads and writes user records.
//
// Lookups return copies: mutating a returned User never changes stored
// state. Errors are [ErrUserNotFound], [ErrDuplicate] or wrap
// [ErrStoreUnavailable].
type UserRepository interface {
	// FindByUsername returns the user with exactly this username.
	FindByUsername(ctx context.Context, username string) (models.User, error)

	// FindByID returns the user with this id.
	FindByID(ctx context.Context, id int64) (models.User, error)

	// Insert stores a new user and returns its assigned id. Username and
	// email uniqueness are checked atomically with the write.
	Insert(ctx context.Context, user models.User) (int64, error)

	// Update persists the mutable fields of an existing user: password
	// hash, last login, failed attempts and lock expiry.
	Update(ctx context.Context, user models.User) error
}

// ErrorClassificator interprets driver errors for one SQL dialect.
type ErrorClassificator interface {
	// Classify reports whether a failed operation may succeed on retry.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}
