package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/redact"
	"github.com/kaabil/contentgen-api/internal/store"
)

// History limits
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

// Generation sources, used as metric labels.
const (
	SourceMock     = "mock"
	SourceProvider = "provider"
)

// Generation outcomes, used as metric labels.
const (
	OutcomeSuccess             = "success"
	OutcomeValidationError     = "validation_error"
	OutcomeProviderUnavailable = "provider_unavailable"
	OutcomeGenerationFailed    = "generation_failed"
	OutcomeStoreError          = "store_error"
)

// ContentGateway routes a request to one of the configured vendor providers.
// *generation.Gateway satisfies it.
type ContentGateway interface {
	HasAvailable() bool
	Generate(ctx context.Context, req domain.GenerationRequest, preferred generation.ProviderID) (generation.Result, error)
}

// GenerationRecorder counts finished Generate calls.
type GenerationRecorder interface {
	RecordGeneration(source, outcome string)
}

// GenerationService produces content for a verified user and manages that
// user's history.
type GenerationService interface {
	// Generate validates req, produces content with a vendor provider (or the
	// mock engine when none is configured) and persists exactly one record.
	// Nothing is persisted when any step fails.
	Generate(ctx context.Context, identity domain.Identity, req domain.GenerationRequest) (*domain.Generation, error)

	// List returns up to limit of the user's records, most recent first.
	// A limit of 0 means DefaultHistoryLimit.
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Generation, error)

	// Get returns one of the user's records.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Generation, error)

	// Delete removes one of the user's records.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// GenerationServiceOption configures the generation service.
type GenerationServiceOption func(*generationServiceImpl)

// WithPreferredProvider sets the provider tried first. The default is openai.
func WithPreferredProvider(id generation.ProviderID) GenerationServiceOption {
	return func(s *generationServiceImpl) {
		s.preferred = id
	}
}

// WithGenerationRecorder registers a recorder for generation outcomes.
func WithGenerationRecorder(r GenerationRecorder) GenerationServiceOption {
	return func(s *generationServiceImpl) {
		s.recorder = r
	}
}

type generationServiceImpl struct {
	gateway   ContentGateway
	store     store.GenerationStore
	preferred generation.ProviderID
	recorder  GenerationRecorder
	logger    *slog.Logger
}

type noopRecorder struct{}

func (noopRecorder) RecordGeneration(string, string) {}

// NewGenerationService creates a GenerationService.
// It returns validation errors if any of the required dependencies are nil.
func NewGenerationService(
	gateway ContentGateway,
	generationStore store.GenerationStore,
	logger *slog.Logger,
	opts ...GenerationServiceOption,
) (GenerationService, error) {
	if gateway == nil {
		return nil, domain.NewValidationError("gateway", "cannot be nil")
	}
	if generationStore == nil {
		return nil, domain.NewValidationError("generationStore", "cannot be nil")
	}
	if logger == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil")
	}

	s := &generationServiceImpl{
		gateway:   gateway,
		store:     generationStore,
		preferred: generation.ProviderOpenAI,
		recorder:  noopRecorder{},
		logger:    logger.With(slog.String("component", "generation_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.preferred.Valid() {
		return nil, domain.NewValidationError("preferred", fmt.Sprintf("unknown provider %q", s.preferred))
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}

	return s, nil
}

// Generate implements GenerationService.
func (s *generationServiceImpl) Generate(
	ctx context.Context,
	identity domain.Identity,
	req domain.GenerationRequest,
) (*domain.Generation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", identity.ID.String()),
		slog.String("content_type", string(req.ContentType)),
	)

	if identity.ID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		s.recorder.RecordGeneration(SourceProvider, OutcomeValidationError)
		log.Debug("generation request rejected", slog.String("error", err.Error()))
		return nil, err
	}

	var text, model, source string
	if !s.gateway.HasAvailable() {
		source = SourceMock
		text = generation.GenerateMock(req.ContentType, req.Tone, req.Product, req.Audience)
		model = generation.MockModel
		log.Info("no provider configured, serving demo content")
	} else {
		source = SourceProvider
		result, err := s.gateway.Generate(ctx, req, s.preferred)
		if err != nil {
			s.recorder.RecordGeneration(source, gatewayOutcome(err))
			log.Error("content generation failed", slog.String("error", redact.Error(err)))
			return nil, err
		}
		text = result.Text
		model = result.Model
		log = log.With(slog.String("provider", string(result.Provider)))
	}

	record, err := domain.NewGeneration(identity.ID, req, text, model)
	if err != nil {
		s.recorder.RecordGeneration(source, OutcomeGenerationFailed)
		log.Error("generated content rejected", slog.String("error", err.Error()))
		return nil, NewGenerationServiceError("generate", "invalid generated content", err)
	}

	if err := s.store.Create(ctx, record); err != nil {
		s.recorder.RecordGeneration(source, OutcomeStoreError)
		log.Error("failed to persist generation", slog.String("error", redact.Error(err)))
		return nil, NewGenerationServiceError("generate", "failed to save generation", err)
	}

	s.recorder.RecordGeneration(source, OutcomeSuccess)
	log.Info("generation created",
		slog.String("generation_id", record.ID.String()),
		slog.String("model_used", record.ModelUsed))

	return record, nil
}

func gatewayOutcome(err error) string {
	switch {
	case errors.Is(err, generation.ErrProviderUnavailable):
		return OutcomeProviderUnavailable
	default:
		return OutcomeGenerationFailed
	}
}

// List implements GenerationService.
func (s *generationServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Generation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, &limitError{limit: limit}
	}

	records, err := s.store.ListByUser(ctx, userID, limit)
	if err != nil {
		log.Error("failed to list generations",
			slog.String("user_id", userID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewGenerationServiceError("list", "failed to list generations", err)
	}

	return records, nil
}

// Get implements GenerationService.
func (s *generationServiceImpl) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Generation, error) {
	record, err := s.store.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get generation",
				slog.String("user_id", userID.String()),
				slog.String("generation_id", id.String()),
				slog.String("error", redact.Error(err)))
		}
		return nil, NewGenerationServiceError("get", "failed to get generation", err)
	}
	return record, nil
}

// Delete implements GenerationService.
func (s *generationServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("generation_id", id.String()),
	)

	if err := s.store.DeleteByIDForUser(ctx, id, userID); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete generation", slog.String("error", redact.Error(err)))
		}
		return NewGenerationServiceError("delete", "failed to delete generation", err)
	}

	log.Info("generation deleted")
	return nil
}

// limitError reports an out-of-range history limit. It matches both
// domain.ErrValidation and ErrInvalidLimit.
type limitError struct {
	limit int
}

func (e *limitError) Error() string {
	return fmt.Sprintf("%s: limit: must be between 1 and %d, got %d",
		domain.ErrValidation, MaxHistoryLimit, e.limit)
}

func (e *limitError) Is(target error) bool {
	return target == domain.ErrValidation || target == ErrInvalidLimit
}
