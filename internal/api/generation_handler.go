package api

import (
	"net/http"

	"github.com/kaabil/contentgen-api/internal/api/shared"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/service"
)

// GenerationHandler serves content generation and the caller's history.
type GenerationHandler struct {
	generationService service.GenerationService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// Generate handles POST /api/generate.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req domain.GenerationRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	record, err := h.generationService.Generate(r.Context(), identity, req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, GenerateResponse{
		ID:               record.ID,
		GeneratedContent: record.GeneratedContent,
		ModelUsed:        record.ModelUsed,
		CreatedAt:        record.CreatedAt,
	})
}

// ListHistory handles GET /api/history?limit=N.
func (h *GenerationHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	limit, err := getQueryInt(r, "limit", service.DefaultHistoryLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if limit == 0 {
		// An explicit zero is out of range rather than "use the default".
		limit = -1
	}

	records, err := h.generationService.List(r.Context(), identity.ID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]GenerationResponse, len(records))
	for i, g := range records {
		resp[i] = newGenerationResponse(g)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetHistory handles GET /api/history/{id}.
func (h *GenerationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	record, err := h.generationService.Get(r.Context(), identity.ID, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newGenerationResponse(record))
}

// DeleteHistory handles DELETE /api/history/{id}.
func (h *GenerationHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.generationService.Delete(r.Context(), identity.ID, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
