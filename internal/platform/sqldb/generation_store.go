package sqldb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/store"
)

// GenerationStore implements store.GenerationStore on a SQL database.
// Every read and delete filters on user_id in the same statement as the ID,
// so ownership is enforced by the database rather than after the fact.
type GenerationStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

var _ store.GenerationStore = (*GenerationStore)(nil)

// NewGenerationStore creates a GenerationStore. db may be a pool or a transaction.
func NewGenerationStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *GenerationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GenerationStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "generation_store")),
	}
}

const generationColumns = `id, user_id, content_type, tone, length, product, audience,
		extra_instructions, generated_content, model_used, created_at`

// Create implements store.GenerationStore.Create.
func (s *GenerationStore) Create(ctx context.Context, g *domain.Generation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	// PostgreSQL keeps microseconds; truncate so the caller's copy matches what is stored.
	g.CreatedAt = g.CreatedAt.UTC().Truncate(time.Microsecond)

	if err := g.Validate(); err != nil {
		log.Warn("generation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("generation_id", g.ID.String()))
		return err
	}

	query := `
		INSERT INTO generations (` + generationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(query),
		g.ID,
		g.UserID,
		string(g.ContentType),
		string(g.Tone),
		string(g.Length),
		g.Product,
		g.Audience,
		g.ExtraInstructions,
		g.GeneratedContent,
		g.ModelUsed,
		g.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if IsForeignKeyViolation(err) {
			log.Warn("generation owner does not exist",
				slog.String("generation_id", g.ID.String()),
				slog.String("user_id", g.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, g.UserID)
		}
		log.Error("failed to create generation",
			slog.String("error", err.Error()),
			slog.String("generation_id", g.ID.String()),
			slog.String("user_id", g.UserID.String()))
		return store.NewStoreError("generation", "create", "failed to insert generation", mapped)
	}

	log.Debug("generation created",
		slog.String("generation_id", g.ID.String()),
		slog.String("user_id", g.UserID.String()),
		slog.String("model_used", g.ModelUsed))
	return nil
}

// ListByUser implements store.GenerationStore.ListByUser.
// Records created in the same instant are ordered by insertion, newest first.
func (s *GenerationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Generation, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", store.ErrInvalidLimit, limit)
	}

	query := `
		SELECT ` + generationColumns + `
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), userID, limit)
	if err != nil {
		return nil, store.NewStoreError("generation", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	generations := []*domain.Generation{}
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, store.NewStoreError("generation", "list", "scan failed", err)
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("generation", "list", "iteration failed", err)
	}

	return generations, nil
}

// GetByIDForUser implements store.GenerationStore.GetByIDForUser.
func (s *GenerationStore) GetByIDForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Generation, error) {
	query := `
		SELECT ` + generationColumns + `
		FROM generations
		WHERE id = $1 AND user_id = $2
	`
	g, err := scanGeneration(s.db.QueryRowContext(ctx, s.dialect.Rebind(query), id, userID))
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrGenerationNotFound
		}
		return nil, store.NewStoreError("generation", "get", "query failed", mapped)
	}
	return g, nil
}

// DeleteByIDForUser implements store.GenerationStore.DeleteByIDForUser.
func (s *GenerationStore) DeleteByIDForUser(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM generations WHERE id = $1 AND user_id = $2`
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), id, userID)
	if err != nil {
		return store.NewStoreError("generation", "delete", "statement failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrGenerationNotFound); err != nil {
		return err
	}

	log.Info("generation deleted",
		slog.String("generation_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*domain.Generation, error) {
	var (
		g                         domain.Generation
		contentType, tone, length string
	)
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&contentType,
		&tone,
		&length,
		&g.Product,
		&g.Audience,
		&g.ExtraInstructions,
		&g.GeneratedContent,
		&g.ModelUsed,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.ContentType = domain.ContentType(contentType)
	g.Tone = domain.Tone(tone)
	g.Length = domain.Length(length)
	g.CreatedAt = g.CreatedAt.UTC()
	return &g, nil
}
