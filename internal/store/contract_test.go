package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/admin-panel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(username, email string, role models.Role) models.User {
	return models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=64,t=1,p=1$c2FsdA$a2V5",
		Role:         role,
		CreatedAt:    time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

// runRepositoryContract exercises behaviour every UserRepository must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) UserRepository) {
	t.Run("insert assigns ids and find returns the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		rootID, err := repo.Insert(ctx, newUser("root", "root@x", models.RoleAdminMaster))
		require.NoError(t, err)
		aliceID, err := repo.Insert(ctx, newUser("alice", "a@x", models.RoleAdminTechnical))
		require.NoError(t, err)
		assert.NotEqual(t, rootID, aliceID)

		found, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, aliceID, found.ID)
		assert.Equal(t, "a@x", found.Email)
		assert.Equal(t, models.RoleAdminTechnical, found.Role)
		assert.Nil(t, found.LastLoginAt)
		assert.Nil(t, found.LockedUntil)
		assert.Zero(t, found.FailedAttempts)
		assert.True(t, found.CreatedAt.Equal(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)))

		byID, err := repo.FindByID(ctx, rootID)
		require.NoError(t, err)
		assert.Equal(t, "root", byID.Username)
	})

	t.Run("lookups are case sensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Insert(ctx, newUser("alice", "a@x", models.RoleViewer))
		require.NoError(t, err)

		_, err = repo.FindByUsername(ctx, "Alice")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
		_, err = repo.FindByID(ctx, 404)
		assert.ErrorIs(t, err, ErrUserNotFound)
		err = repo.Update(ctx, models.User{ID: 404, PasswordHash: "x"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("duplicate username or email", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Insert(ctx, newUser("alice", "a@x", models.RoleViewer))
		require.NoError(t, err)

		_, err = repo.Insert(ctx, newUser("alice", "other@x", models.RoleViewer))
		assert.ErrorIs(t, err, ErrDuplicate)
		_, err = repo.Insert(ctx, newUser("alice2", "a@x", models.RoleViewer))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("update persists only mutable fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		id, err := repo.Insert(ctx, newUser("alice", "a@x", models.RoleViewer))
		require.NoError(t, err)

		user, err := repo.FindByID(ctx, id)
		require.NoError(t, err)

		login := time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)
		locked := time.Date(2026, 1, 3, 9, 15, 0, 0, time.UTC)
		user.PasswordHash = "new-verifier"
		user.LastLoginAt = &login
		user.FailedAttempts = 3
		user.LockedUntil = &locked
		user.Email = "changed@x"
		user.Role = models.RoleAdminMaster
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "new-verifier", got.PasswordHash)
		require.NotNil(t, got.LastLoginAt)
		assert.True(t, got.LastLoginAt.Equal(login))
		assert.Equal(t, 3, got.FailedAttempts)
		require.NotNil(t, got.LockedUntil)
		assert.True(t, got.LockedUntil.Equal(locked))
		assert.Equal(t, "a@x", got.Email)
		assert.Equal(t, models.RoleViewer, got.Role)

		got.LockedUntil = nil
		got.FailedAttempts = 0
		require.NoError(t, repo.Update(ctx, got))

		cleared, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, cleared.LockedUntil)
		assert.Zero(t, cleared.FailedAttempts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		repo := newRepo(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.FindByUsername(ctx, "alice")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		_, err = repo.Insert(ctx, newUser("alice", "a@x", models.RoleViewer))
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("concurrent inserts of one username", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				u := newUser("race", "race"+string(rune('a'+i))+"@x", models.RoleViewer)
				if _, err := repo.Insert(ctx, u); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				} else {
					assert.ErrorIs(t, err, ErrDuplicate)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, succeeded)
	})
}
