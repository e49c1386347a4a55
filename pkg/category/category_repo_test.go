package category

import (
	"context"
	"testing"
	"time"

	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryImpl_SQLite(t *testing.T) {
	runRepositoryTests(t, func(t *testing.T) *RepositoryImpl {
		return NewRepository(test_utils.SetupTestDB(t))
	})
}

func TestRepositoryImpl_Postgres(t *testing.T) {
	db := test_utils.SetupPostgresDB(t)
	runRepositoryTests(t, func(t *testing.T) *RepositoryImpl {
		test_utils.TruncateAll(t, db)
		return NewRepository(db)
	})
}

func runRepositoryTests(t *testing.T, newRepo func(t *testing.T) *RepositoryImpl) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should store and list categories in insertion order", func(t *testing.T) {
		repo := newRepo(t)

		// given
		firstId, err := repo.Store(ctx, Category{Name: "Food", Color: "#10B981", Icon: "fa-shopping-cart", IsDefault: true}.WithDefaults(now))
		require.NoError(t, err)
		secondId, err := repo.Store(ctx, Category{Name: "Pets"}.WithDefaults(now))
		require.NoError(t, err)

		// when
		categories, err := repo.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, firstId, categories[0].ID)
		assert.Equal(t, "Food", categories[0].Name)
		assert.True(t, categories[0].IsDefault)
		assert.Equal(t, now, categories[0].CreatedAt)
		assert.Equal(t, secondId, categories[1].ID)
		assert.Equal(t, DefaultColor, categories[1].Color)
		assert.False(t, categories[1].IsDefault)
	})

	t.Run("should reject duplicate name", func(t *testing.T) {
		repo := newRepo(t)

		// given
		_, err := repo.Store(ctx, Category{Name: "Food"}.WithDefaults(now))
		require.NoError(t, err)

		// when
		_, err = repo.Store(ctx, Category{Name: "Food"}.WithDefaults(now))

		// then
		assert.ErrorIs(t, err, database.ErrDuplicate)
	})

	t.Run("should find by exact name", func(t *testing.T) {
		repo := newRepo(t)

		// given
		id, err := repo.Store(ctx, Category{Name: "Health"}.WithDefaults(now))
		require.NoError(t, err)

		// when
		found, ok, err := repo.FindByName(ctx, "Health")
		_, missingOk, missingErr := repo.FindByName(ctx, "Travel")

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, id, found.ID)
		require.NoError(t, missingErr)
		assert.False(t, missingOk)
	})

	t.Run("should update and report missing rows", func(t *testing.T) {
		repo := newRepo(t)

		// given
		id, err := repo.Store(ctx, Category{Name: "Pets"}.WithDefaults(now))
		require.NoError(t, err)

		// when
		updated, err := repo.Update(ctx, Category{ID: id, Name: "Animals", Color: "#000000", Icon: "fa-dog", UpdatedAt: now.Add(time.Hour)})
		require.NoError(t, err)
		missing, missingErr := repo.Update(ctx, Category{ID: id + 100, Name: "Nope", UpdatedAt: now})

		// then
		assert.True(t, updated)
		require.NoError(t, missingErr)
		assert.False(t, missing)
		found, ok, err := repo.FindByName(ctx, "Animals")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "#000000", found.Color)
		assert.Equal(t, now.Add(time.Hour), found.UpdatedAt)
	})

	t.Run("should delete", func(t *testing.T) {
		repo := newRepo(t)

		// given
		id, err := repo.Store(ctx, Category{Name: "Pets"}.WithDefaults(now))
		require.NoError(t, err)

		// when
		deleted, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		again, err := repo.Delete(ctx, id)
		require.NoError(t, err)

		// then
		assert.True(t, deleted)
		assert.False(t, again)
		categories, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, categories)
	})
}
