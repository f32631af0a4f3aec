package sqldb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/platform/sqldb"
	"github.com/kaabil/contentgen-api/internal/store"
	"github.com/kaabil/contentgen-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The suites below run against every dialect: SQLite always, PostgreSQL with
// the integration build tag.

func createUser(t *testing.T, users *sqldb.UserStore, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "password123")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func newGeneration(t *testing.T, userID uuid.UUID, product string, createdAt time.Time) *domain.Generation {
	t.Helper()

	g, err := domain.NewGeneration(userID, domain.GenerationRequest{
		ContentType:       domain.ContentTypeEmail,
		Tone:              domain.ToneFormal,
		Length:            domain.LengthMedium,
		Product:           product,
		Audience:          "developers",
		ExtraInstructions: "Keep it short.",
	}, "Generated copy for "+product, "gpt-4o-mini")
	require.NoError(t, err)
	if !createdAt.IsZero() {
		g.CreatedAt = createdAt
	}
	return g
}

func runUserStoreSuite(t *testing.T, db *sqldb.DB) {
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)

			user, err := domain.NewUser("Writer@Example.com", "password123")
			require.NoError(t, err)
			require.NoError(t, users.Create(ctx, user))

			assert.Empty(t, user.Password, "plaintext password is cleared")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")))

			byID, err := users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, user.ID, byID.ID)
			assert.Equal(t, "writer@example.com", byID.Email)
			assert.Equal(t, user.HashedPassword, byID.HashedPassword)
			assert.True(t, user.CreatedAt.Equal(byID.CreatedAt))

			byEmail, err := users.GetByEmail(ctx, "  WRITER@example.COM ")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byEmail.ID)
		})
	})

	t.Run("duplicate email", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)
			createUser(t, users, "dup@example.com")

			again, err := domain.NewUser("DUP@example.com", "different-password")
			require.NoError(t, err)

			err = users.Create(ctx, again)
			assert.ErrorIs(t, err, store.ErrEmailExists)
			assert.ErrorIs(t, err, store.ErrDuplicate)
		})
	})

	t.Run("missing user", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)

			_, err := users.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrUserNotFound)

			_, err = users.GetByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})

	t.Run("invalid user", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)

			err := users.Create(ctx, &domain.User{ID: uuid.New(), Email: "not-an-email", Password: "password123"})
			assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		})
	})
}

func runGenerationStoreSuite(t *testing.T, db *sqldb.DB) {
	ctx := context.Background()

	t.Run("create and get for owner", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)
			owner := createUser(t, users, "owner@example.com")

			g := newGeneration(t, owner.ID, "Acme", time.Time{})
			require.NoError(t, generations.Create(ctx, g))

			got, err := generations.GetByIDForUser(ctx, g.ID, owner.ID)
			require.NoError(t, err)
			assert.Equal(t, g.ID, got.ID)
			assert.Equal(t, owner.ID, got.UserID)
			assert.Equal(t, domain.ContentTypeEmail, got.ContentType)
			assert.Equal(t, domain.ToneFormal, got.Tone)
			assert.Equal(t, domain.LengthMedium, got.Length)
			assert.Equal(t, "Acme", got.Product)
			assert.Equal(t, "developers", got.Audience)
			assert.Equal(t, "Keep it short.", got.ExtraInstructions)
			assert.Equal(t, "Generated copy for Acme", got.GeneratedContent)
			assert.Equal(t, "gpt-4o-mini", got.ModelUsed)
			assert.True(t, g.CreatedAt.Equal(got.CreatedAt), "created_at round-trips: %v vs %v", g.CreatedAt, got.CreatedAt)
		})
	})

	t.Run("other users see not found", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)
			owner := createUser(t, users, "owner@example.com")
			intruder := createUser(t, users, "intruder@example.com")

			g := newGeneration(t, owner.ID, "Acme", time.Time{})
			require.NoError(t, generations.Create(ctx, g))

			_, err := generations.GetByIDForUser(ctx, g.ID, intruder.ID)
			assert.ErrorIs(t, err, store.ErrGenerationNotFound)

			err = generations.DeleteByIDForUser(ctx, g.ID, intruder.ID)
			assert.ErrorIs(t, err, store.ErrGenerationNotFound)

			_, err = generations.GetByIDForUser(ctx, g.ID, owner.ID)
			assert.NoError(t, err, "a rejected delete leaves the record in place")

			list, err := generations.ListByUser(ctx, intruder.ID, 50)
			require.NoError(t, err)
			assert.Empty(t, list)
			assert.NotNil(t, list)
		})
	})

	t.Run("delete", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)
			owner := createUser(t, users, "owner@example.com")

			g := newGeneration(t, owner.ID, "Acme", time.Time{})
			require.NoError(t, generations.Create(ctx, g))

			require.NoError(t, generations.DeleteByIDForUser(ctx, g.ID, owner.ID))

			_, err := generations.GetByIDForUser(ctx, g.ID, owner.ID)
			assert.ErrorIs(t, err, store.ErrGenerationNotFound)
			assert.ErrorIs(t, generations.DeleteByIDForUser(ctx, g.ID, owner.ID), store.ErrGenerationNotFound)
			assert.ErrorIs(t, generations.DeleteByIDForUser(ctx, uuid.New(), owner.ID), store.ErrGenerationNotFound)
		})
	})

	t.Run("list is newest first and limited", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)
			owner := createUser(t, users, "owner@example.com")
			other := createUser(t, users, "other@example.com")

			base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			first := newGeneration(t, owner.ID, "first", base)
			second := newGeneration(t, owner.ID, "second", base.Add(time.Minute))
			third := newGeneration(t, owner.ID, "third", base.Add(2*time.Minute))
			foreign := newGeneration(t, other.ID, "foreign", base.Add(3*time.Minute))
			for _, g := range []*domain.Generation{second, first, third, foreign} {
				require.NoError(t, generations.Create(ctx, g))
			}

			all, err := generations.ListByUser(ctx, owner.ID, 50)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "third", all[0].Product)
			assert.Equal(t, "second", all[1].Product)
			assert.Equal(t, "first", all[2].Product)

			limited, err := generations.ListByUser(ctx, owner.ID, 2)
			require.NoError(t, err)
			require.Len(t, limited, 2)
			assert.Equal(t, third.ID, limited[0].ID)
			assert.Equal(t, second.ID, limited[1].ID)
		})
	})

	t.Run("same timestamp keeps insertion order", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)
			owner := createUser(t, users, "owner@example.com")

			instant := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			a := newGeneration(t, owner.ID, "a", instant)
			b := newGeneration(t, owner.ID, "b", instant)
			require.NoError(t, generations.Create(ctx, a))
			require.NoError(t, generations.Create(ctx, b))

			list, err := generations.ListByUser(ctx, owner.ID, 10)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, b.ID, list[0].ID)
			assert.Equal(t, a.ID, list[1].ID)
		})
	})

	t.Run("invalid limit", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)

			_, err := generations.ListByUser(ctx, uuid.New(), 0)
			assert.ErrorIs(t, err, store.ErrInvalidLimit)
		})
	})

	t.Run("unknown owner", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)

			err := generations.Create(ctx, newGeneration(t, uuid.New(), "orphan", time.Time{}))
			assert.ErrorIs(t, err, store.ErrInvalidEntity)
		})
	})

	t.Run("invalid record", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			generations := sqldb.NewGenerationStore(tx, db.Dialect, nil)

			g := newGeneration(t, uuid.New(), "Acme", time.Time{})
			g.GeneratedContent = "   "
			assert.ErrorIs(t, generations.Create(ctx, g), domain.ErrValidation)
		})
	})
}
