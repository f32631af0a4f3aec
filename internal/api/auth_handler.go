package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/api/shared"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/service"
	"github.com/kaabil/contentgen-api/internal/service/auth"
	"github.com/kaabil/contentgen-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newUserResponse(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	h.issueTokens(w, r, user.ID)
}

// RefreshToken handles POST /auth/refresh. The refresh token must belong to
// a user that still exists.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid refresh token")
		return
	}

	user, err := h.userService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	h.issueTokens(w, r, user.ID)
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	pair, err := h.jwtService.GenerateTokenPair(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("issued token pair",
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), identity.ID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
