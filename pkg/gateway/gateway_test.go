package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/internal/test_utils"
	"github.com/finanzapp/finanzapp/pkg/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()
var now = time.Date(2025, time.April, 20, 10, 0, 0, 0, time.UTC)

func TestGateway_SeedDefaults(t *testing.T) {
	t.Run("should insert the default set once", func(t *testing.T) {
		// given
		g := NewSQLGateway(test_utils.SetupTestDB(t))

		// when
		first, err := g.SeedDefaults(ctx, now)
		require.NoError(t, err)
		second, err := g.SeedDefaults(ctx, now)
		require.NoError(t, err)

		// then
		assert.Equal(t, 9, first)
		assert.Equal(t, 0, second)
		categories, err := g.Categories.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, category.Names(category.DefaultCategories()), category.Names(categories))
	})

	t.Run("should only add missing defaults", func(t *testing.T) {
		// given
		stubs := NewStubGateway()
		_, err := stubs.Categories.Store(ctx, category.Category{Name: "Food"}.WithDefaults(now))
		require.NoError(t, err)

		// when
		inserted, err := stubs.SeedDefaults(ctx, now)

		// then
		require.NoError(t, err)
		assert.Equal(t, 8, inserted)
	})

	t.Run("should tolerate concurrent seeders", func(t *testing.T) {
		// given
		g := NewStubGateway()
		var wg sync.WaitGroup
		errs := make([]error, 4)

		// when
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = g.SeedDefaults(ctx, now)
			}()
		}
		wg.Wait()

		// then
		for _, err := range errs {
			assert.NoError(t, err)
		}
		categories, err := g.Categories.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 9)
	})

	t.Run("should surface storage failures", func(t *testing.T) {
		// given
		g := NewStubGateway()
		g.CategoryStub.Err = database.StorageError("find", errors.New("boom"))

		// when
		_, err := g.SeedDefaults(ctx, now)

		// then
		assert.ErrorIs(t, err, database.ErrStorage)
	})
}

func TestGateway_SeedSampleData(t *testing.T) {
	t.Run("should seed an empty store", func(t *testing.T) {
		// given
		g := NewSQLGateway(test_utils.SetupTestDB(t))

		// when
		seeded, err := g.SeedSampleData(ctx, now)

		// then
		require.NoError(t, err)
		assert.True(t, seeded)
		transactions, err := g.Transactions.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, transactions, 2)
		budgets, err := g.Budgets.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, budgets, 2)
	})

	t.Run("should leave a store with transactions alone", func(t *testing.T) {
		// given
		g := NewStubGateway()
		_, err := g.SeedSampleData(ctx, now)
		require.NoError(t, err)

		// when
		seeded, err := g.SeedSampleData(ctx, now)

		// then
		require.NoError(t, err)
		assert.False(t, seeded)
		transactions, err := g.Transactions.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, transactions, 2)
	})
}
