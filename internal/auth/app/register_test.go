package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"siteauth/internal/auth/app"
	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
	"siteauth/internal/auth/ports/api"
)

var (
	errDatabase = errors.New("database connection error")
	fixedNow    = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return fixedNow }

func validInput() api.RegisterInput {
	return api.RegisterInput{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "  Jane.Doe@Example.COM ",
		DateOfBirth:     "1990-05-17",
		Phone:           "+1 555 123 4567",
		Password:        "Abcd123!",
		ConfirmPassword: "Abcd123!",
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *api.RegisterInput)
		field  string
	}{
		{"missing first name", func(in *api.RegisterInput) { in.FirstName = "" }, "firstName"},
		{"blank last name", func(in *api.RegisterInput) { in.LastName = "   " }, "lastName"},
		{"missing email", func(in *api.RegisterInput) { in.Email = "" }, "email"},
		{"missing date of birth", func(in *api.RegisterInput) { in.DateOfBirth = "" }, "dateOfBirth"},
		{"missing phone", func(in *api.RegisterInput) { in.Phone = "" }, "phone"},
		{"missing password", func(in *api.RegisterInput) { in.Password = "" }, "password"},
		{"missing confirmation", func(in *api.RegisterInput) { in.ConfirmPassword = "" }, "confirmPassword"},
		{"malformed email", func(in *api.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"password mismatch", func(in *api.RegisterInput) { in.ConfirmPassword = "Abcd123?" }, "confirmPassword"},
		{"weak password", func(in *api.RegisterInput) {
			in.Password, in.ConfirmPassword = "abcd1234", "abcd1234"
		}, "password"},
		{"password over bcrypt limit", func(in *api.RegisterInput) {
			long := "Aa1!" + strings.Repeat("x", 70)
			in.Password, in.ConfirmPassword = long, long
		}, "password"},
		{"phone without country code", func(in *api.RegisterInput) { in.Phone = "555 123 4567" }, "phone"},
		{"bad date of birth", func(in *api.RegisterInput) { in.DateOfBirth = "17/05/1990" }, "dateOfBirth"},
		{"unparseable expiry", func(in *api.RegisterInput) {
			in.AccountType = api.AccountTypeTemporary
			in.ExpiresAt = "next tuesday"
		}, "expiresAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMocks()
			uc := app.NewAccountUseCase(m.repo, m.password, m.token, app.AccountConfig{})

			in := validInput()
			tt.modify(&in)

			res, err := uc.Register(context.Background(), in)

			assert.Nil(t, res)
			require.Error(t, err)
			assert.ErrorIs(t, err, services.ErrValidation)

			var vErr *services.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)

			m.assertExpectations(t)
		})
	}
}

func TestRegister_NormalAccount(t *testing.T) {
	m := newTestMocks()
	uc := app.NewAccountUseCase(m.repo, m.password, m.token, app.AccountConfig{}, app.WithClock(fixedClock))
	tokenExpiry := fixedNow.Add(2 * time.Hour)
	created := &entities.User{
		ID: "user-1", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com",
		PasswordHash: "hashed", Phone: "+15551234567", Role: entities.RoleNormal, CreatedAt: fixedNow,
	}

	m.password.On("Hash", mock.Anything, "Abcd123!").Return("hashed", nil).Once()
	m.repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Email == "jane.doe@example.com" &&
			u.Phone == "+15551234567" &&
			u.Role == entities.RoleNormal &&
			u.ExpiresAt == nil &&
			u.PasswordHash == "hashed" &&
			u.DateOfBirth.Equal(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC))
	})).Return(created, nil).Once()
	m.token.On("Issue", mock.Anything, mock.MatchedBy(func(u *entities.User) bool { return u.ID == "user-1" })).
		Return("token-1", tokenExpiry, nil).Once()

	res, err := uc.Register(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "token-1", res.Token)
	assert.Equal(t, tokenExpiry, res.ExpiresAt)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, entities.RoleNormal, res.User.Role)
	assert.Nil(t, res.User.ExpiresAt)
	m.assertExpectations(t)
}

func TestRegister_TemporaryAccount(t *testing.T) {
	explicit := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt string
		cfgTTL    time.Duration
		expected  time.Time
	}{
		{"default fourteen days", "", 0, fixedNow.Add(14 * 24 * time.Hour)},
		{"configured window", "", 48 * time.Hour, fixedNow.Add(48 * time.Hour)},
		{"explicit date", "2025-06-01", 0, explicit},
		{"explicit timestamp", "2025-06-01T00:00:00Z", 0, explicit},
		{"past date is accepted", "2020-01-01", 0, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMocks()
			uc := app.NewAccountUseCase(m.repo, m.password, m.token,
				app.AccountConfig{TemporaryAccountTTL: tt.cfgTTL}, app.WithClock(fixedClock))

			in := validInput()
			in.AccountType = api.AccountTypeTemporary
			in.ExpiresAt = tt.expiresAt

			var stored *entities.User
			m.password.On("Hash", mock.Anything, in.Password).Return("hashed", nil).Once()
			m.repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				stored = args.Get(1).(*entities.User)
			}).Return(&entities.User{ID: "temp-1", Role: entities.RoleTemporary, ExpiresAt: &tt.expected}, nil).Once()
			m.token.On("Issue", mock.Anything, mock.Anything).Return("token", fixedNow.Add(2*time.Hour), nil).Once()

			_, err := uc.Register(context.Background(), in)
			require.NoError(t, err)

			require.NotNil(t, stored)
			assert.Equal(t, entities.RoleTemporary, stored.Role)
			require.NotNil(t, stored.ExpiresAt)
			assert.True(t, tt.expected.Equal(*stored.ExpiresAt), "got %s", stored.ExpiresAt)
			m.assertExpectations(t)
		})
	}
}

func TestRegister_ExpiryIgnoredForNormalAccount(t *testing.T) {
	m := newTestMocks()
	uc := app.NewAccountUseCase(m.repo, m.password, m.token, app.AccountConfig{})

	in := validInput()
	in.AccountType = "normal"
	in.ExpiresAt = "garbage"

	m.password.On("Hash", mock.Anything, in.Password).Return("hashed", nil).Once()
	m.repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Role == entities.RoleNormal && u.ExpiresAt == nil
	})).Return(&entities.User{ID: "u"}, nil).Once()
	m.token.On("Issue", mock.Anything, mock.Anything).Return("token", time.Now(), nil).Once()

	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestRegister_Failures(t *testing.T) {
	t.Run("duplicate email is a conflict", func(t *testing.T) {
		m := newTestMocks()
		uc := app.NewAccountUseCase(m.repo, m.password, m.token, app.AccountConfig{})

		m.password.On("Hash", mock.Anything, mock.Anything).Return("hashed", nil).Once()
		m.repo.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrEmailAlreadyExists).Once()

		res, err := uc.Register(context.Background(), validInput())

		assert.Nil(t, res)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)
		assert.NotErrorIs(t, err, services.ErrValidation)
		m.assertExpectations(t)
	})

	t.Run("store failure is propagated", func(t *testing.T) {
		m := newTestMocks()
		uc := app.NewAccountUseCase(m.repo, m.password, m.token, app.AccountConfig{})

		m.password.On("Hash", mock.Anything, mock.Anything).Return("hashed", nil).Once()
		m.repo.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()

		_, err := uc.Register(context.Background(), validInput())

		assert.ErrorIs(t, err, errDatabase)
		assert.False(t, services.IsUnauthorized(err))
		m.assertExpectations(t)
	})

	t.Run("hashing failure", func(t *testing.T) {
		m := newTestMocks()
		uc := app.NewAccountUseCase(m.repo, m.password, m.token, app.AccountConfig{})

		m.password.On("Hash", mock.Anything, mock.Anything).Return("", services.ErrHashingFailed).Once()

		_, err := uc.Register(context.Background(), validInput())

		assert.ErrorIs(t, err, services.ErrHashingFailed)
		m.assertExpectations(t)
	})

	t.Run("token failure", func(t *testing.T) {
		m := newTestMocks()
		uc := app.NewAccountUseCase(m.repo, m.password, m.token, app.AccountConfig{})

		m.password.On("Hash", mock.Anything, mock.Anything).Return("hashed", nil).Once()
		m.repo.On("Create", mock.Anything, mock.Anything).Return(&entities.User{ID: "u"}, nil).Once()
		m.token.On("Issue", mock.Anything, mock.Anything).
			Return("", time.Time{}, services.ErrTokenGenerationFailed).Once()

		_, err := uc.Register(context.Background(), validInput())

		assert.ErrorIs(t, err, services.ErrTokenGenerationFailed)
		m.assertExpectations(t)
	})
}
