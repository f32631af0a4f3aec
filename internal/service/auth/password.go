package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier compares a stored hash with a plaintext candidate.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword and
	// ErrPasswordMismatch when it does not.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier for hashes produced by the user store.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return err
	}
}
