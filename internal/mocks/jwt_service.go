package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
// Tokens are "access:<uuid>" and "refresh:<uuid>" unless overridden.
type MockJWTService struct {
	GenerateTokenPairFn    func(ctx context.Context, userID uuid.UUID) (*auth.TokenPair, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Err is returned by GenerateTokenPair when set
	Err error
	// ValidateErr is returned by both validators when set
	ValidateErr error
	// ExpiresAt is reported as the access token expiry
	ExpiresAt time.Time
}

var _ auth.JWTService = (*MockJWTService)(nil)

// AccessToken returns the token the default implementation issues for userID.
func AccessToken(userID uuid.UUID) string {
	return auth.TokenTypeAccess + ":" + userID.String()
}

// RefreshToken returns the refresh token the default implementation issues for userID.
func RefreshToken(userID uuid.UUID) string {
	return auth.TokenTypeRefresh + ":" + userID.String()
}

// GenerateTokenPair implements auth.JWTService
func (m *MockJWTService) GenerateTokenPair(ctx context.Context, userID uuid.UUID) (*auth.TokenPair, error) {
	if m.GenerateTokenPairFn != nil {
		return m.GenerateTokenPairFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	expiresAt := m.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Hour).UTC()
	}
	return &auth.TokenPair{
		AccessToken:  AccessToken(userID),
		RefreshToken: RefreshToken(userID),
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateToken implements auth.JWTService
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.parse(tokenString, auth.TokenTypeAccess, auth.ErrInvalidToken)
}

// ValidateRefreshToken implements auth.JWTService
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.parse(tokenString, auth.TokenTypeRefresh, auth.ErrInvalidRefreshToken)
}

func (m *MockJWTService) parse(tokenString, tokenType string, invalid error) (*auth.Claims, error) {
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}

	prefix := tokenType + ":"
	if len(tokenString) <= len(prefix) || tokenString[:len(prefix)] != prefix {
		return nil, invalid
	}
	userID, err := uuid.Parse(tokenString[len(prefix):])
	if err != nil {
		return nil, invalid
	}
	return &auth.Claims{
		UserID:    userID,
		TokenType: tokenType,
		Subject:   userID.String(),
	}, nil
}
