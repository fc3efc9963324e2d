package app_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"siteauth/internal/auth/adapters/memory"
	adapters "siteauth/internal/auth/adapters/services"
	"siteauth/internal/auth/app"
	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
	"siteauth/internal/auth/ports/api"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newRealUseCase(t *testing.T, opts ...app.Option) api.AccountUseCase {
	t.Helper()
	jwtCfg := services.JWTConfig{SecretKey: []byte("integration-secret"), TokenTTL: 2 * time.Hour, Issuer: "siteauth"}
	return app.NewAccountUseCase(
		memory.NewUserRepository(),
		adapters.NewBcrypt(bcrypt.MinCost),
		adapters.NewJWT(jwtCfg),
		app.AccountConfig{AdminEmail: "admin@example.com", AdminPassword: "Admin123!"},
		opts...,
	)
}

func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := newRealUseCase(t)

	registered, err := uc.Register(ctx, validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "jane.doe@example.com", registered.User.Email)

	profile, err := uc.GetProfile(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, profile.ID)
	assert.Equal(t, entities.RoleNormal, profile.Role)

	loggedIn, err := uc.Login(ctx, "JANE.DOE@example.com", "Abcd123!")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = uc.Login(ctx, "jane.doe@example.com", "Abcd123?")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = uc.Login(ctx, "other@example.com", "Abcd123!")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = uc.GetProfile(ctx, registered.Token+"x")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAccountLifecycle_DuplicateEmailIgnoresCase(t *testing.T) {
	ctx := context.Background()
	uc := newRealUseCase(t)

	_, err := uc.Register(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "JANE.DOE@EXAMPLE.COM"
	_, err = uc.Register(ctx, in)
	assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)
}

func TestAccountLifecycle_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	uc := newRealUseCase(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validInput()
			in.FirstName = fmt.Sprintf("Jane%d", i)

			_, err := uc.Register(ctx, in)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, services.ErrEmailAlreadyExists) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestAccountLifecycle_TemporaryExpiry(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Now().UTC()}
	uc := newRealUseCase(t, app.WithClock(c.Now))

	in := validInput()
	in.AccountType = api.AccountTypeTemporary
	in.ExpiresAt = c.Now().Add(time.Hour).Format(time.RFC3339)

	registered, err := uc.Register(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, registered.User.ExpiresAt)

	_, err = uc.GetProfile(ctx, registered.Token)
	require.NoError(t, err)

	c.Advance(time.Hour)

	_, err = uc.GetProfile(ctx, registered.Token)
	assert.ErrorIs(t, err, services.ErrAccountExpired)

	_, err = uc.Login(ctx, in.Email, "wrong-password")
	assert.ErrorIs(t, err, services.ErrAccountExpired)

	_, err = uc.Login(ctx, in.Email, in.Password)
	assert.ErrorIs(t, err, services.ErrAccountExpired)
}

func TestAccountLifecycle_AdminBootstrapIsIdempotent(t *testing.T) {
	ctx := context.Background()
	uc := newRealUseCase(t)

	require.NoError(t, uc.EnsureAdminBootstrap(ctx))
	require.NoError(t, uc.EnsureAdminBootstrap(ctx))

	res, err := uc.Login(ctx, "admin@example.com", "Admin123!")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, res.User.Role)
	assert.Nil(t, res.User.ExpiresAt)
}
