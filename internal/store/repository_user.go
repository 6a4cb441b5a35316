package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/models"
)

const (
	readAttempts = 3
	retryBackoff = 50 * time.Millisecond
)

// userRepository is the database/sql implementation of [UserRepository].
// The same code serves SQLite and PostgreSQL; only the placeholder format
// and the error classifier differ.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db      *DB
	queries userQueries
	logger  *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating user repository")

	var placeholder sq.PlaceholderFormat = sq.Question
	if db.dialect == dialectPostgres {
		placeholder = sq.Dollar
	}

	return &userRepository{
		db:      db,
		queries: newUserQueries(placeholder),
		logger:  logger,
	}
}

// FindByUsername implements [UserRepository]. Transient failures are retried.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	query, args, err := r.queries.findBy("username", username)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrBuildingSQLQuery, err)
	}
	return r.findOne(ctx, "*userRepository.FindByUsername", query, args)
}

// FindByID implements [UserRepository]. Transient failures are retried.
func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	query, args, err := r.queries.findBy("id", id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrBuildingSQLQuery, err)
	}
	return r.findOne(ctx, "*userRepository.FindByID", query, args)
}

// Insert implements [UserRepository]. The database enforces uniqueness; a
// constraint failure becomes [ErrDuplicate].
//
// Inserts are not retried: a retry after a lost reply could report a
// duplicate for the row this call created.
func (r *userRepository) Insert(ctx context.Context, user models.User) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.queries.insert(user)
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			log.Debug().Str("func", "*userRepository.Insert").Str("username", user.Username).Msg("unique violation")
			return 0, fmt.Errorf("%w: %w", ErrDuplicate, err)
		}

		log.Err(err).Str("func", "*userRepository.Insert").Msg("error inserting user")
		return 0, fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrExecutingQuery, err)
	}

	return id, nil
}

// Update implements [UserRepository]. Zero affected rows means the id does
// not exist.
func (r *userRepository) Update(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := r.queries.update(user)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", user.ID).Msg("error updating user")
		return fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, fn, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
		switch {
		case err == nil:
			return user, nil
		case errors.Is(err, sql.ErrNoRows):
			return models.User{}, ErrUserNotFound
		}

		lastErr = err
		if r.db.errorClassificator.Classify(err) != Retryable || attempt == readAttempts {
			break
		}

		log.Warn().Err(err).Str("func", fn).Int("attempt", attempt).Msg("retrying transient store error")
		select {
		case <-ctx.Done():
			return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	log.Err(lastErr).Str("func", fn).Msg("error querying user")
	return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, lastErr)
}
