package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/api/shared"
	"github.com/kaabil/contentgen-api/internal/domain"
)

// requireIdentity returns the caller resolved by the auth middleware. When it
// is missing an error response has already been written.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Not authenticated")
		return domain.Identity{}, false
	}
	return identity, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrInvalidID, paramName)
	}
	return id, nil
}

// getQueryInt reads an optional integer query parameter. A missing parameter
// yields def.
func getQueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

// decodeAndValidate decodes the JSON body into v and validates it. Returned
// validation failures match domain.ErrValidation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		return err
	}
	if err := shared.ValidateRequest(v); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}
