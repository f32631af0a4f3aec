package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService issues and validates the bearer tokens used by the API.
type JWTService interface {
	// GenerateTokenPair issues a fresh access token and refresh token for the user.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error)

	// ValidateToken validates an access token and returns its claims.
	// Returns ErrExpiredToken, ErrWrongTokenType or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	// Returns ErrExpiredRefreshToken, ErrWrongTokenType or ErrInvalidRefreshToken on failure.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresAt is the expiry of the access token.
	ExpiresAt time.Time
}

// Claims represents the validated content of a token.
type Claims struct {
	UserID    uuid.UUID
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
