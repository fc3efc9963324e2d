package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
	"siteauth/internal/auth/ports/repositories"
	"siteauth/pkg/logger"
)

// UserRepository хранит учетные записи в памяти процесса.
// Email уникален без учета регистра, как и индекс LOWER(email) в Postgres.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entities.User
	byEmail map[string]string
	now     func() time.Time
}

// NewUserRepository создает пустое хранилище.
func NewUserRepository() repositories.UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func clone(u *entities.User) *entities.User {
	c := *u
	if u.ExpiresAt != nil {
		exp := *u.ExpiresAt
		c.ExpiresAt = &exp
	}
	return &c
}

// Create добавляет пользователя и присваивает ему ID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "memory"), zap.String("method", "Create"))

	key := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		log.Debug(ctx, "email already registered", zap.String("email", user.Email))
		return nil, services.ErrEmailAlreadyExists
	}

	stored := clone(user)
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()

	r.byID[stored.ID] = stored
	r.byEmail[key] = stored.ID

	return clone(stored), nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return clone(user), nil
}

// FindByEmail ищет по точному совпадению email, как и Postgres-реализация.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok || r.byID[id].Email != email {
		return nil, entities.ErrUserNotFound
	}
	return clone(r.byID[id]), nil
}

// EnsureSchema ничего не делает.
func (r *UserRepository) EnsureSchema(context.Context) error {
	return nil
}

// Ping всегда успешен.
func (r *UserRepository) Ping(context.Context) error {
	return nil
}
