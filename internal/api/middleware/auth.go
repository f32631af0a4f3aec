package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/api/shared"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/service/auth"
	"github.com/kaabil/contentgen-api/internal/store"
)

// UserLookup resolves the subject of a token to a current user.
type UserLookup interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserLookup
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates the bearer token, loads the user it was issued for
// and stores the resulting domain.Identity in the request context.
// A token whose user no longer exists is rejected.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		user, err := m.users.GetUser(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		identity := domain.Identity{ID: user.ID, Email: user.Email}
		ctx = shared.WithIdentity(ctx, identity)
		ctx = logger.WithLogger(ctx, log.With(slog.String("user_id", user.ID.String())))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
