package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"siteauth/internal/auth/domain/credentials"
	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
	"siteauth/internal/auth/ports/api"
	"siteauth/internal/auth/ports/repositories"
	svc "siteauth/internal/auth/ports/services"
	"siteauth/pkg/logger"
)

// DefaultTemporaryAccountTTL - срок временной учетной записи, если он не указан.
const DefaultTemporaryAccountTTL = 14 * 24 * time.Hour

// Данные администратора, создаваемого при первом запуске.
const (
	adminFirstName = "Admin"
	adminLastName  = "User"
	adminPhone     = "+10000000000"
)

var adminDateOfBirth = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	methodRegister       = "Register"
	methodLogin          = "Login"
	methodGetProfile     = "GetProfile"
	methodAdminBootstrap = "EnsureAdminBootstrap"

	msgStartRegistration = "starting user registration"
	msgValidationFailed  = "registration input rejected"
	msgEmailExists       = "user with this email already exists"
	msgUserRegistered    = "user registered successfully"
	msgLoginAttempt      = "login attempt"
	msgLoginThrottled    = "login attempts exhausted"
	msgLoginNonExistent  = "login attempt with non-existent email"
	msgLoginExpired      = "login attempt on expired account"
	msgInvalidPassword   = "invalid password provided"
	msgUserLoggedIn      = "user logged in successfully"
	msgProfileRequested  = "profile requested"
	msgProfileNotFound   = "token subject no longer exists"
	msgProfileExpired    = "profile requested for expired account"
	msgAdminExists       = "admin account already exists"
	msgAdminCreated      = "admin account created"
	msgAdminRaced        = "admin account created concurrently"
	msgLimiterFailed     = "login attempt limiter unavailable"

	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrIssueToken        = "failed to issue token"
	msgErrFindingUser       = "error finding user"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidating        = "validating registration"
	errCtxEmailRegistered   = "email already registered"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxIssuingToken      = "issuing token"
	errCtxInvalidCreds      = "invalid credentials"
	errCtxAccountExpired    = "account expired"
	errCtxThrottled         = "login throttled"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxVerifyingToken    = "verifying token"
	errCtxBootstrapAdmin    = "bootstrapping admin"
)

// AccountConfig - параметры учетных записей.
type AccountConfig struct {
	AdminEmail          string
	AdminPassword       string
	TemporaryAccountTTL time.Duration
}

// Option настраивает AccountUseCaseImpl.
type Option func(*AccountUseCaseImpl)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(a *AccountUseCaseImpl) {
		a.now = now
	}
}

// WithAttemptLimiter включает ограничение неудачных попыток входа.
func WithAttemptLimiter(limiter svc.AttemptLimiter) Option {
	return func(a *AccountUseCaseImpl) {
		a.limiter = limiter
	}
}

// AccountUseCaseImpl реализует интерфейс api.AccountUseCase.
type AccountUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	limiter     svc.AttemptLimiter
	cfg         AccountConfig
	now         func() time.Time
}

// NewAccountUseCase создает сервис учетных записей.
func NewAccountUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	cfg AccountConfig,
	opts ...Option,
) api.AccountUseCase {
	if cfg.TemporaryAccountTTL <= 0 {
		cfg.TemporaryAccountTTL = DefaultTemporaryAccountTTL
	}

	a := &AccountUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		cfg:         cfg,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register создает учетную запись и сразу выпускает для нее токен.
func (a *AccountUseCaseImpl) Register(ctx context.Context, in api.RegisterInput) (*services.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))
	log.Debug(ctx, msgStartRegistration)

	reg, err := validateRegistration(in)
	if err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	log = log.With(zap.String("email", reg.email))

	user := &entities.User{
		FirstName:   reg.firstName,
		LastName:    reg.lastName,
		Email:       reg.email,
		DateOfBirth: reg.dateOfBirth,
		Phone:       reg.phone,
		Role:        entities.RoleNormal,
	}
	if reg.temporary {
		user.Role = entities.RoleTemporary
		expiresAt := a.now().UTC().Add(a.cfg.TemporaryAccountTTL)
		if reg.expiresAt != nil {
			expiresAt = *reg.expiresAt
		}
		user.ExpiresAt = &expiresAt
	}

	user.PasswordHash, err = a.passwordSvc.Hash(ctx, reg.password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID), zap.String("role", string(created.Role)))

	return a.authResult(ctx, created)
}

// Login проверяет email и пароль. Срок временной учетной записи проверяется
// до пароля.
func (a *AccountUseCaseImpl) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	email = credentials.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	if !a.allowAttempt(ctx, log, email) {
		log.Info(ctx, msgLoginThrottled)
		return nil, fmt.Errorf("%s: %w", errCtxThrottled, services.ErrTooManyAttempts)
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			a.registerFailure(ctx, log, email)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if user.IsExpired(a.now()) {
		log.Info(ctx, msgLoginExpired, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxAccountExpired, services.ErrAccountExpired)
	}

	valid := false
	if password != "" {
		valid, err = a.passwordSvc.Verify(ctx, password, user.PasswordHash)
		if err != nil {
			log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
		}
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.String("userID", user.ID))
		a.registerFailure(ctx, log, email)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, services.ErrInvalidCredentials)
	}

	a.resetAttempts(ctx, log, email)
	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	return a.authResult(ctx, user)
}

// GetProfile возвращает профиль владельца токена. Срок учетной записи
// проверяется по хранилищу, а не по данным токена.
func (a *AccountUseCaseImpl) GetProfile(ctx context.Context, token string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile))

	claims, err := a.tokenSvc.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, err)
	}

	log = log.With(zap.String("userID", claims.UserID))
	log.Debug(ctx, msgProfileRequested)

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgProfileNotFound)
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrUserNotFound)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if user.IsExpired(a.now()) {
		log.Info(ctx, msgProfileExpired)
		return nil, fmt.Errorf("%s: %w", errCtxAccountExpired, services.ErrAccountExpired)
	}

	return user.Sanitize(), nil
}

// EnsureAdminBootstrap создает администратора с настроенными email и паролем,
// если учетной записи с этим email еще нет.
func (a *AccountUseCaseImpl) EnsureAdminBootstrap(ctx context.Context) error {
	email := credentials.NormalizeEmail(a.cfg.AdminEmail)
	log := logger.Log(ctx).With(zap.String("method", methodAdminBootstrap), zap.String("email", email))

	_, err := a.userRepo.FindByEmail(ctx, email)
	if err == nil {
		log.Debug(ctx, msgAdminExists)
		return nil
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxBootstrapAdmin, err)
	}

	hash, err := a.passwordSvc.Hash(ctx, a.cfg.AdminPassword)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %s: %w", errCtxBootstrapAdmin, errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		FirstName:    adminFirstName,
		LastName:     adminLastName,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  adminDateOfBirth,
		Phone:        adminPhone,
		Role:         entities.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Info(ctx, msgAdminRaced)
			return nil
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return fmt.Errorf("%s: %s: %w", errCtxBootstrapAdmin, errCtxCreatingUser, err)
	}

	log.Info(ctx, msgAdminCreated, zap.String("userID", created.ID))
	return nil
}

func (a *AccountUseCaseImpl) authResult(ctx context.Context, user *entities.User) (*services.AuthResult, error) {
	token, expiresAt, err := a.tokenSvc.Issue(ctx, user)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	return &services.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Sanitize(),
	}, nil
}

// allowAttempt пропускает попытку, если ограничитель недоступен.
func (a *AccountUseCaseImpl) allowAttempt(ctx context.Context, log *logger.Logger, key string) bool {
	if a.limiter == nil {
		return true
	}
	allowed, err := a.limiter.Allow(ctx, key)
	if err != nil {
		log.Warn(ctx, msgLimiterFailed, zap.Error(err))
		return true
	}
	return allowed
}

func (a *AccountUseCaseImpl) registerFailure(ctx context.Context, log *logger.Logger, key string) {
	if a.limiter == nil {
		return
	}
	if err := a.limiter.RegisterFailure(ctx, key); err != nil {
		log.Warn(ctx, msgLimiterFailed, zap.Error(err))
	}
}

func (a *AccountUseCaseImpl) resetAttempts(ctx context.Context, log *logger.Logger, key string) {
	if a.limiter == nil {
		return
	}
	if err := a.limiter.Reset(ctx, key); err != nil {
		log.Warn(ctx, msgLimiterFailed, zap.Error(err))
	}
}
