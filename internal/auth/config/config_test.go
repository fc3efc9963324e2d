package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteauth/internal/auth/config"
	"siteauth/pkg/logger"
)

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetForTest(t, "AUTH_STORE", "AUTH_JWT_TOKEN_TTL", "AUTH_TEMPORARY_ACCOUNT_TTL", "AUTH_HTTP_PORT",
		"AUTH_REDIS_ENABLED", "AUTH_LOGIN_MAX_ATTEMPTS", "AUTH_JWT_SECRET_KEY", "AUTH_ADMIN_EMAIL",
		"AUTH_ADMIN_PASSWORD", "AUTH_GRACEFUL_SHUTDOWN_TIMEOUT")

	cfg, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, config.StorePostgres, cfg.Store.Kind)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.Account.TemporaryAccountTTL)
	assert.Equal(t, "0.0.0.0:3001", cfg.HTTP.GetAddress())
	assert.False(t, cfg.Redis.Enabled)
	assert.EqualValues(t, 5, cfg.Redis.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Redis.BreakerCooldown)
	assert.Equal(t, 10*time.Second, cfg.Shutdown.Timeout)
	assert.NotEmpty(t, cfg.JWT.SecretKey)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_STORE", "memory")
	t.Setenv("AUTH_JWT_SECRET_KEY", "from-env")
	t.Setenv("AUTH_JWT_TOKEN_TTL", "30m")
	t.Setenv("AUTH_TEMPORARY_ACCOUNT_TTL", "48h")
	t.Setenv("AUTH_POSTGRES_HOST", "db.internal")
	t.Setenv("AUTH_POSTGRES_PORT", "6543")
	t.Setenv("AUTH_REDIS_ENABLED", "true")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.Store.Kind)
	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.Account.ToApp().TemporaryAccountTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Contains(t, cfg.Postgres.GetDSN(), "host=db.internal port=6543")
	assert.Contains(t, cfg.Postgres.GetConnectionURL(), "@db.internal:6543/")

	domain := cfg.JWT.ToDomain()
	assert.Equal(t, []byte("from-env"), domain.SecretKey)
	assert.Equal(t, 30*time.Minute, domain.TokenTTL)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetForTest(t, "AUTH_HTTP_PORT", "AUTH_ADMIN_EMAIL")
	t.Setenv("AUTH_STORE", "memory")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AUTH_HTTP_PORT=9090\nAUTH_ADMIN_EMAIL=root@example.com\n"), 0o600))

	cfg, err := config.Load(context.Background(), envFile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "root@example.com", cfg.Account.AdminEmail)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		key, value  string
		expectedErr error
	}{
		{"unknown store", "AUTH_STORE", "mongo", config.ErrUnknownStore},
		{"empty secret", "AUTH_JWT_SECRET_KEY", "", config.ErrEmptySecret},
		{"zero token ttl", "AUTH_JWT_TOKEN_TTL", "0s", config.ErrNonPositiveTokenTTL},
		{"empty admin password", "AUTH_ADMIN_PASSWORD", "", config.ErrEmptyAdminCredentials},
		{"short admin password", "AUTH_ADMIN_PASSWORD", "Ab1!", config.ErrWeakAdminPassword},
		{"admin password without digit", "AUTH_ADMIN_PASSWORD", "Abcdefg!", config.ErrWeakAdminPassword},
		{"admin password over bcrypt limit", "AUTH_ADMIN_PASSWORD", "Aa1!" + strings.Repeat("x", 69), config.ErrWeakAdminPassword},
		{"malformed admin email", "AUTH_ADMIN_EMAIL", "admin", config.ErrInvalidAdminEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_STORE", "postgres")
			t.Setenv("AUTH_JWT_SECRET_KEY", "secret")
			t.Setenv("AUTH_JWT_TOKEN_TTL", "2h")
			t.Setenv("AUTH_ADMIN_EMAIL", "admin@example.com")
			t.Setenv("AUTH_ADMIN_PASSWORD", "Admin123!")
			t.Setenv(tt.key, tt.value)

			_, err := config.Load(context.Background(), "")
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestPostgresConfig_GetConnectRetry(t *testing.T) {
	cfg := config.PostgresConfig{ConnectRetries: 9, ConnectBackoff: time.Second}

	retryCfg := cfg.GetConnectRetry()
	assert.Equal(t, 9, retryCfg.MaxAttempts)
	assert.Equal(t, time.Second, retryCfg.InitialBackoff)

	defaults := (&config.PostgresConfig{}).GetConnectRetry()
	assert.Positive(t, defaults.MaxAttempts)
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, logger.Production, config.ParseEnvironment("production"))
	assert.Equal(t, logger.Production, config.ParseEnvironment(" PRODUCTION "))
	assert.Equal(t, logger.Development, config.ParseEnvironment("dev"))
	assert.Equal(t, logger.Development, config.ParseEnvironment(""))

	log, err := (&config.LoggingConfig{Level: "debug", Mode: "production"}).NewLogger()
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestRedisConfig_Conversions(t *testing.T) {
	cfg := config.RedisConfig{
		Host: "cache", Port: 6380, MaxAttempts: 3, Window: time.Minute, Timeout: time.Second,
		BreakerThreshold: 4, BreakerCooldown: 20 * time.Second,
	}

	client := cfg.ToClient()
	assert.Equal(t, "cache:6380", client.Address())
	assert.Equal(t, time.Second, client.Timeout)

	lim := cfg.ToLimiter()
	assert.EqualValues(t, 3, lim.MaxAttempts)
	assert.Equal(t, time.Minute, lim.Window)

	br := cfg.ToBreaker()
	assert.Equal(t, 4, br.FailureThreshold)
	assert.Equal(t, 20*time.Second, br.Cooldown)
}
