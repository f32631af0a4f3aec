package api

import (
	"net/http"

	"github.com/kaabil/contentgen-api/internal/api/shared"
	"github.com/kaabil/contentgen-api/internal/generation"
)

// Service identity reported by the info and health endpoints.
const (
	ServiceName    = "AI Content Generation Platform API"
	ServiceVersion = "1.0.0"
)

// ProviderStatus reports which content providers are configured.
// *generation.Gateway satisfies it.
type ProviderStatus interface {
	Status() map[generation.ProviderID]bool
}

// HealthHandler serves the unauthenticated info and health endpoints.
type HealthHandler struct {
	providers ProviderStatus
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(providers ProviderStatus) *HealthHandler {
	return &HealthHandler{providers: providers}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, InfoResponse{
		Message: ServiceName,
		Version: ServiceVersion,
		Metrics: "/metrics",
		Health:  "/health",
	})
}

// Health handles GET /health. Every known provider is listed.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.providers.Status()
	configured := make(map[string]bool, len(generation.Precedence))
	for _, id := range generation.Precedence {
		configured[string(id)] = status[id]
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:       "healthy",
		Service:      ServiceName,
		Version:      ServiceVersion,
		AIConfigured: configured,
	})
}
