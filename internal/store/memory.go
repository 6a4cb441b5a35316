package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/admin-panel/models"
)

// memoryUserRepository keeps users in process memory. A single RWMutex
// guards all maps, so uniqueness checks and the insert are one atomic step.
type memoryUserRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]models.User
	byUsername map[string]int64
	byEmail    map[string]int64
}

// NewMemoryUserRepository returns an empty in-memory [UserRepository].
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:       make(map[int64]models.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
	}
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) Insert(ctx context.Context, user models.User) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return 0, fmt.Errorf("%w: username %q", ErrDuplicate, user.Username)
	}
	if _, taken := r.byEmail[user.Email]; taken {
		return 0, fmt.Errorf("%w: email", ErrDuplicate)
	}

	r.nextID++
	user = cloneUser(user)
	user.ID = r.nextID

	r.byID[user.ID] = user
	r.byUsername[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID

	return user.ID, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user models.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return ErrUserNotFound
	}

	stored.PasswordHash = user.PasswordHash
	stored.LastLoginAt = cloneTime(user.LastLoginAt)
	stored.FailedAttempts = user.FailedAttempts
	stored.LockedUntil = cloneTime(user.LockedUntil)
	r.byID[user.ID] = stored

	return nil
}

func cloneUser(u models.User) models.User {
	u.LastLoginAt = cloneTime(u.LastLoginAt)
	u.LockedUntil = cloneTime(u.LockedUntil)
	return u
}
