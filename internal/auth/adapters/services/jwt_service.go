package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
	svc "siteauth/internal/auth/ports/services"
	"siteauth/pkg/logger"
)

const (
	methodIssue  = "Issue"
	methodVerify = "Verify"

	msgIssuingToken     = "issuing access token"
	msgVerifyingToken   = "verifying access token"
	msgTokenIssued      = "token issued successfully"
	msgTokenVerified    = "token verified successfully"
	msgTokenExpired     = "token has expired"
	msgTokenRejected    = "token rejected"
	msgEmptySecret      = "empty secret key provided"
	msgEmptySubject     = "subject claim is empty"
	msgUnknownRoleClaim = "unknown role claim"

	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxGeneratingToken = "generating token"
	errCtxVerifyingToken  = "verifying token"
)

// Claims - представление TokenClaims в формате библиотеки JWT.
type Claims struct {
	Email            string           `json:"email"`
	Role             string           `json:"role"`
	AccountExpiresAt *jwt.NumericDate `json:"account_expires_at,omitempty"`
	jwt.RegisteredClaims
}

// ServiceJWT выпускает HS256 токены с фиксированным сроком действия.
type ServiceJWT struct {
	config services.JWTConfig
	parser *jwt.Parser
	now    func() time.Time
}

// NewJWT создает сервис токенов.
func NewJWT(cfg services.JWTConfig) svc.TokenService {
	return newJWT(cfg, time.Now)
}

func newJWT(cfg services.JWTConfig, now func() time.Time) *ServiceJWT {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &ServiceJWT{config: cfg, parser: jwt.NewParser(opts...), now: now}
}

func domainToJWTClaims(claims services.TokenClaims, issuer string) Claims {
	c := Claims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	if claims.AccountExpiresAt != nil {
		c.AccountExpiresAt = jwt.NewNumericDate(*claims.AccountExpiresAt)
	}
	return c
}

func jwtToDomainClaims(claims *Claims) (*services.TokenClaims, error) {
	role, err := entities.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}

	out := &services.TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.AccountExpiresAt != nil {
		exp := claims.AccountExpiresAt.Time
		out.AccountExpiresAt = &exp
	}
	return out, nil
}

// Issue выпускает токен для пользователя.
func (s *ServiceJWT) Issue(ctx context.Context, user *entities.User) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.String("userID", user.ID))
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	now := s.now()
	expiresAt := now.Add(s.config.TokenTTL)

	claims := domainToJWTClaims(services.TokenClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Role:             user.Role,
		AccountExpiresAt: user.ExpiresAt,
		IssuedAt:         now,
		ExpiresAt:        expiresAt,
	}, s.config.Issuer)

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// Verify проверяет подпись и срок действия токена.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (*services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgVerifyingToken)

	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.config.SecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrTokenExpired)
		}
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidToken)
	}

	if claims.Subject == "" {
		log.Debug(ctx, msgEmptySubject)
		return nil, fmt.Errorf("%s: %w: empty subject", errCtxVerifyingToken, services.ErrInvalidToken)
	}

	domainClaims, err := jwtToDomainClaims(claims)
	if err != nil {
		log.Debug(ctx, msgUnknownRoleClaim, zap.String("role", claims.Role))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrInvalidToken, err)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", domainClaims.UserID))
	return domainClaims, nil
}
