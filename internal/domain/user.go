package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

var emailValidator = validator.New()

// User represents a registered user of the content generation platform.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and plaintext password.
// The email is normalized to lower case. The caller (the user store) is
// responsible for hashing the password before persisting.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims and lower-cases an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if err := emailValidator.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		switch {
		case len(u.Password) < minPasswordLength:
			return ErrPasswordTooShort
		case len(u.Password) > maxPasswordLength:
			return ErrPasswordTooLong
		}
		return nil
	}

	// Persisted users carry only the hash.
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// Identity is the verified caller of a request, as resolved by the auth
// middleware. It is trusted and immutable for the lifetime of the request.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
