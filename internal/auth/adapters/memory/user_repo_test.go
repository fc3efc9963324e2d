package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteauth/internal/auth/adapters/memory"
	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
)

func newUser(email string) *entities.User {
	return &entities.User{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		PasswordHash: "hash",
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Phone:        "+15551234567",
		Role:         entities.RoleNormal,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	created, err := repo.Create(ctx, newUser("jane@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byEmail, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "JANE@example.com")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	exp := time.Now().Add(time.Hour)
	u := newUser("temp@example.com")
	u.Role = entities.RoleTemporary
	u.ExpiresAt = &exp

	created, err := repo.Create(ctx, u)
	require.NoError(t, err)

	created.Email = "changed@example.com"
	*created.ExpiresAt = exp.Add(time.Hour)

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "temp@example.com", stored.Email)
	assert.True(t, exp.Equal(*stored.ExpiresAt))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	_, err := repo.Create(ctx, newUser("dup@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("DUP@example.com"))
	assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)
}

func TestUserRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, newUser("race@example.com"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, services.ErrEmailAlreadyExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newUser(fmt.Sprintf("user%d@example.com", i)))
		require.NoError(t, err)
	}
}

func TestUserRepository_Infrastructure(t *testing.T) {
	repo := memory.NewUserRepository()
	assert.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, repo.Ping(context.Background()))
}
