package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUserRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, user *entities.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Verify(ctx context.Context, token string) (*services.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

type mockAttemptLimiter struct {
	mock.Mock
}

func (m *mockAttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockAttemptLimiter) RegisterFailure(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockAttemptLimiter) Reset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type testMocks struct {
	repo     *mockUserRepository
	password *mockPasswordService
	token    *mockTokenService
	limiter  *mockAttemptLimiter
}

func newTestMocks() *testMocks {
	return &testMocks{
		repo:     new(mockUserRepository),
		password: new(mockPasswordService),
		token:    new(mockTokenService),
		limiter:  new(mockAttemptLimiter),
	}
}

func (m *testMocks) assertExpectations(t mock.TestingT) {
	m.repo.AssertExpectations(t)
	m.password.AssertExpectations(t)
	m.token.AssertExpectations(t)
	m.limiter.AssertExpectations(t)
}
