package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
	"siteauth/internal/auth/ports/repositories"
	"siteauth/pkg/logger"
)

// uniqueViolationCode - SQLSTATE нарушения уникального ограничения.
const uniqueViolationCode = "23505"

const (
	userColumns = `id, first_name, last_name, email, password_hash, date_of_birth, phone, role, expires_at, created_at`

	queryFindByID = `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	queryFindByEmail = `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1
    `

	queryInsertUser = `
        INSERT INTO users (first_name, last_name, email, password_hash, date_of_birth, phone, role, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + userColumns
)

// schemaStatements создают таблицу users и индексы, повторный запуск ничего не меняет.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        first_name    TEXT NOT NULL,
        last_name     TEXT NOT NULL,
        email         TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        date_of_birth DATE NOT NULL,
        phone         TEXT NOT NULL,
        role          TEXT NOT NULL DEFAULT 'normal' CHECK (role IN ('admin', 'normal', 'temporary')),
        expires_at    TIMESTAMPTZ NULL,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_key ON users (LOWER(email))`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,
}

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user      entities.User
		role      string
		expiresAt *time.Time
	)

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.DateOfBirth,
		&user.Phone,
		&role,
		&expiresAt,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := entities.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, role)
	}
	user.Role = parsed
	user.ExpiresAt = expiresAt

	return &user, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	// Столбец id имеет тип UUID: строка другого вида не может совпасть ни с одной записью.
	if _, err := uuid.Parse(id); err != nil {
		log.Debug(ctx, "user id is not a uuid", zap.String("id", id))
		return nil, entities.ErrUserNotFound
	}

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail находит пользователя по email без преобразования регистра.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// Create создает нового пользователя. Уникальность email обеспечивает индекс,
// а не предварительная проверка.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created, err := scanUser(r.pool.QueryRow(ctx, queryInsertUser,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.DateOfBirth,
		user.Phone,
		string(user.Role),
		user.ExpiresAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "email already registered", zap.String("email", user.Email))
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.Debug(ctx, "user created", zap.String("id", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

// EnsureSchema идемпотентно создает таблицу пользователей и индексы.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "EnsureSchema"))

	for _, stmt := range schemaStatements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			log.Error(ctx, "error ensuring users schema", zap.Error(err))
			return fmt.Errorf("error ensuring users schema: %w", err)
		}
	}

	log.Debug(ctx, "users schema ensured")
	return nil
}

// Ping проверяет доступность базы данных.
func (r *UserRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("error pinging database: %w", err)
	}
	return nil
}
