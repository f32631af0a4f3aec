package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/redact"
	"github.com/kaabil/contentgen-api/internal/service/auth"
	"github.com/kaabil/contentgen-api/internal/store"
)

// UserService provides registration, credential checks and lookups.
type UserService interface {
	// CreateUser registers a new user. Returns a domain validation error for a
	// bad email or password and store.ErrEmailExists for a taken email.
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate returns the user whose credentials match, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore        store.UserStore
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil")
	}
	if passwordVerifier == nil {
		return nil, domain.NewValidationError("passwordVerifier", "cannot be nil")
	}
	if logger == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil")
	}

	return &UserServiceImpl{
		userStore:        userStore,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "user_service")),
	}, nil
}

// CreateUser creates a new user with the specified email and password
func (s *UserServiceImpl) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		log.Debug("invalid user data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email already registered")
			return nil, err
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate checks an email and password pair
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Error("password comparison failed",
				slog.String("user_id", user.ID.String()),
				slog.String("error", err.Error()))
		}
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				slog.String("user_id", userID.String()),
				slog.String("error", redact.Error(err)))
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
