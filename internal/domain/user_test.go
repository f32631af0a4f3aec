package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Test@Example.com ", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	if _, err := NewUser("", "correct-horse-battery"); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	if _, err := NewUser("invalidemail", "correct-horse-battery"); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	if _, err := NewUser("test@example.com", "short"); err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	if _, err := NewUser("test@example.com", strings.Repeat("a", 73)); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}

	if _, err := NewUser("test@example.com", ""); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	stored := User{
		ID:             uuid.New(),
		Email:          "stored@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	if err := stored.Validate(); err != nil {
		t.Errorf("Expected stored user to be valid, got %v", err)
	}

	stored.ID = uuid.Nil
	if err := stored.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}
}
