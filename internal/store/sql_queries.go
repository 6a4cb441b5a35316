package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/admin-panel/models"
)

var userColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"role",
	"created_at",
	"last_login",
	"failed_attempts",
	"locked_until",
}

// userQueries builds the user statements for one placeholder dialect.
type userQueries struct {
	builder sq.StatementBuilderType
	table   string
}

func newUserQueries(placeholder sq.PlaceholderFormat) userQueries {
	return userQueries{
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		table:   models.User{}.TableName(),
	}
}

func (q userQueries) findBy(column string, value any) (string, []any, error) {
	return q.builder.
		Select(userColumns...).
		From(q.table).
		Where(sq.Eq{column: value}).
		ToSql()
}

func (q userQueries) insert(user models.User) (string, []any, error) {
	return q.builder.
		Insert(q.table).
		Columns(userColumns[1:]...).
		Values(
			user.Username,
			user.Email,
			user.PasswordHash,
			user.Role,
			user.CreatedAt,
			nullTime(user.LastLoginAt),
			user.FailedAttempts,
			nullTime(user.LockedUntil),
		).
		Suffix("RETURNING id").
		ToSql()
}

func (q userQueries) update(user models.User) (string, []any, error) {
	return q.builder.
		Update(q.table).
		Set("password_hash", user.PasswordHash).
		Set("last_login", nullTime(user.LastLoginAt)).
		Set("failed_attempts", user.FailedAttempts).
		Set("locked_until", nullTime(user.LockedUntil)).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user        models.User
		lastLogin   sql.NullTime
		lockedUntil sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&lastLogin,
		&user.FailedAttempts,
		&lockedUntil,
	)
	if err != nil {
		return models.User{}, err
	}

	if lastLogin.Valid {
		user.LastLoginAt = &lastLogin.Time
	}
	if lockedUntil.Valid {
		user.LockedUntil = &lockedUntil.Time
	}

	return user, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
