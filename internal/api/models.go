package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// TokenType is always "bearer"
	TokenType string `json:"token_type"`
	// ExpiresAt is the RFC 3339 expiry of the access token
	ExpiresAt string `json:"expires_at"`
}

// UserResponse describes a registered user without credentials.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// GenerateResponse is returned by POST /api/generate.
type GenerateResponse struct {
	ID               uuid.UUID `json:"id"`
	GeneratedContent string    `json:"generated_content"`
	ModelUsed        string    `json:"model_used"`
	CreatedAt        time.Time `json:"created_at"`
}

// GenerationResponse is a full history record.
type GenerationResponse struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	ContentType       domain.ContentType `json:"content_type"`
	Tone              domain.Tone        `json:"tone"`
	Length            domain.Length      `json:"length"`
	Product           string             `json:"product"`
	Audience          string             `json:"audience"`
	ExtraInstructions *string            `json:"extra_instructions"`
	GeneratedContent  string             `json:"generated_content"`
	ModelUsed         string             `json:"model_used"`
	CreatedAt         time.Time          `json:"created_at"`
}

func newGenerationResponse(g *domain.Generation) GenerationResponse {
	resp := GenerationResponse{
		ID:               g.ID,
		UserID:           g.UserID,
		ContentType:      g.ContentType,
		Tone:             g.Tone,
		Length:           g.Length,
		Product:          g.Product,
		Audience:         g.Audience,
		GeneratedContent: g.GeneratedContent,
		ModelUsed:        g.ModelUsed,
		CreatedAt:        g.CreatedAt,
	}
	if g.ExtraInstructions != "" {
		extra := g.ExtraInstructions
		resp.ExtraInstructions = &extra
	}
	return resp
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status       string          `json:"status"`
	Service      string          `json:"service"`
	Version      string          `json:"version"`
	AIConfigured map[string]bool `json:"ai_configured"`
}

// InfoResponse is returned by GET /.
type InfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Metrics string `json:"metrics"`
	Health  string `json:"health"`
}
