package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
)

// MinSecretLength is the shortest accepted HMAC signing secret.
const MinSecretLength = 32

// DefaultClockSkew is the leeway applied to time-based claims.
const DefaultClockSkew = 2 * time.Minute

// hmacJWTService is an implementation of JWTService using HMAC-SHA256 signing.
type hmacJWTService struct {
	signingKey           []byte
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time
	clockSkew            time.Duration
	logger               *slog.Logger
}

type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// Option configures the JWT service.
type Option func(*hmacJWTService)

// WithTimeFunc replaces the clock used to issue and validate tokens.
func WithTimeFunc(now func() time.Time) Option {
	return func(s *hmacJWTService) {
		if now != nil {
			s.timeFunc = now
		}
	}
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(s *hmacJWTService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
func NewJWTService(cfg config.AuthConfig, opts ...Option) (JWTService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrWeakSecret, MinSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 || cfg.RefreshTokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	s := &hmacJWTService{
		signingKey:           []byte(cfg.JWTSecret),
		tokenLifetime:        time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            DefaultClockSkew,
		logger:               slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "jwt_service"))

	return s, nil
}

// GenerateTokenPair implements JWTService.
func (s *hmacJWTService) GenerateTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("cannot issue tokens for an empty user ID")
	}

	now := s.timeFunc()
	accessExpiry := now.Add(s.tokenLifetime)

	access, err := s.sign(ctx, userID, TokenTypeAccess, now, accessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(ctx, userID, TokenTypeRefresh, now, now.Add(s.refreshTokenLifetime))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    jwt.NewNumericDate(accessExpiry).Time,
	}, nil
}

func (s *hmacJWTService) sign(
	ctx context.Context,
	userID uuid.UUID,
	tokenType string,
	issuedAt, expiresAt time.Time,
) (string, error) {
	claims := jwtCustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("token_type", tokenType))
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// ValidateToken implements JWTService.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeAccess)
}

// ValidateRefreshToken implements JWTService.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeRefresh)
}

func (s *hmacJWTService) validate(ctx context.Context, tokenString, tokenType string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("token_type", tokenType))

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		log.Debug("token validation failed", slog.String("error", err.Error()))
		return nil, validationError(err, tokenType)
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, invalidTokenError(tokenType)
	}
	if claims.TokenType != tokenType {
		log.Debug("token validation failed: wrong token type", slog.String("actual", claims.TokenType))
		return nil, ErrWrongTokenType
	}
	if claims.UserID == uuid.Nil {
		return nil, invalidTokenError(tokenType)
	}

	return &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}

func validationError(err error, tokenType string) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		if tokenType == TokenTypeRefresh {
			return ErrExpiredRefreshToken
		}
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		if tokenType == TokenTypeRefresh {
			return ErrInvalidRefreshToken
		}
		return ErrTokenNotYetValid
	default:
		return invalidTokenError(tokenType)
	}
}

func invalidTokenError(tokenType string) error {
	if tokenType == TokenTypeRefresh {
		return ErrInvalidRefreshToken
	}
	return ErrInvalidToken
}
