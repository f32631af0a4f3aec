package sqldb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// UserStore implements store.UserStore on a SQL database. Passwords are
// hashed with bcrypt before they are written.
type UserStore struct {
	db         store.DBTX
	dialect    Dialect
	bcryptCost int
	logger     *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore. db may be a pool or a transaction.
// A bcryptCost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewUserStore(db store.DBTX, dialect Dialect, bcryptCost int, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &UserStore{
		db:         db,
		dialect:    dialect,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Create implements store.UserStore.Create.
// On success user.HashedPassword is set and user.Password is cleared.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user.Email = domain.NormalizeEmail(user.Email)
	if err := user.Validate(); err != nil {
		log.Debug("user validation failed during create", slog.String("error", err.Error()))
		return err
	}
	if user.Password == "" {
		return domain.ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return store.NewStoreError("user", "create", "failed to hash password", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.CreatedAt = user.CreatedAt.UTC().Truncate(time.Microsecond)
	user.UpdatedAt = user.CreatedAt

	query := `
		INSERT INTO users (id, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, s.dialect.Rebind(query),
		user.ID,
		user.Email,
		string(hash),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "create", "failed to insert user", MapError(err))
	}

	user.HashedPassword = string(hash)
	user.Password = ""

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.getOne(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.getOne(ctx, query, domain.NormalizeEmail(email))
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(query), arg).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", mapped)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}
