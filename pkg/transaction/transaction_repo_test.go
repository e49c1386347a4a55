package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/finanzapp/finanzapp/internal/test_utils"
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryImpl_SQLite(t *testing.T) {
	runRepositoryTests(t, func(t *testing.T) Repository {
		return NewRepository(test_utils.SetupTestDB(t))
	})
}

func TestRepositoryImpl_Postgres(t *testing.T) {
	db := test_utils.SetupPostgresDB(t)
	runRepositoryTests(t, func(t *testing.T) Repository {
		test_utils.TruncateAll(t, db)
		return NewRepository(db)
	})
}

func TestStubRepository(t *testing.T) {
	stub := NewStubRepository()
	runRepositoryTests(t, func(t *testing.T) Repository {
		stub.Cleanup()
		return stub
	})
}

func newTransaction(kind Kind, amount string, date types.Date, category string) Transaction {
	return Transaction{
		Kind:     kind,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
		Category: category,
	}.WithDefaults(now)
}

func runRepositoryTests(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("should store and read back every field", func(t *testing.T) {
		repo := newRepo(t)

		// given
		tx := newTransaction(Expense, "450.50", types.NewDate(2025, time.March, 2), "Food")
		tx.Description = "Weekly groceries"

		// when
		id, err := repo.Store(ctx, tx)
		require.NoError(t, err)
		all, err := repo.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, all, 1)
		got := all[0]
		assert.Equal(t, id, got.ID)
		assert.Equal(t, Expense, got.Kind)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("450.5")), got.Amount.String())
		assert.Equal(t, types.NewDate(2025, time.March, 2), got.Date)
		assert.Equal(t, "Food", got.Category)
		assert.Equal(t, "Weekly groceries", got.Description)
		assert.Equal(t, 2, got.Month)
		assert.Equal(t, 2025, got.Year)
		assert.Equal(t, now, got.CreatedAt)
	})

	t.Run("should re-derive month and year from date on write", func(t *testing.T) {
		repo := newRepo(t)

		// given
		tx := newTransaction(Income, "10", types.NewDate(2025, time.January, 31), "Salary")
		tx.Month, tx.Year = 5, 1990
		id, err := repo.Store(ctx, tx)
		require.NoError(t, err)

		// when
		tx.ID = id
		tx.Date = types.NewDate(2024, time.December, 1)
		ok, err := repo.Update(ctx, tx)
		require.NoError(t, err)

		// then
		assert.True(t, ok)
		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, types.Period{Month: 11, Year: 2024}, all[0].Period())
	})

	t.Run("should find by criteria", func(t *testing.T) {
		repo := newRepo(t)

		// given
		for _, tx := range []Transaction{
			newTransaction(Expense, "10", types.NewDate(2025, time.March, 1), "Food"),
			newTransaction(Expense, "20", types.NewDate(2025, time.March, 20), "Transport"),
			newTransaction(Income, "100", types.NewDate(2025, time.March, 5), "Salary"),
			newTransaction(Expense, "30", types.NewDate(2025, time.February, 28), "Food"),
		} {
			_, err := repo.Store(ctx, tx)
			require.NoError(t, err)
		}
		march := types.Period{Month: 2, Year: 2025}

		// when
		foodInMarch, err := repo.Find(ctx, Criteria{Category: "Food", Period: &march})
		require.NoError(t, err)
		expenses, err := repo.Find(ctx, Criteria{Kind: Expense})
		require.NoError(t, err)
		ranged, err := repo.Find(ctx, Criteria{From: types.NewDate(2025, 3, 1), To: types.NewDate(2025, 3, 5)})
		require.NoError(t, err)

		// then
		require.Len(t, foodInMarch, 1)
		assert.True(t, foodInMarch[0].Amount.Equal(decimal.NewFromInt(10)))
		assert.Len(t, expenses, 3)
		assert.Len(t, ranged, 2)
	})

	t.Run("should report missing rows on update and delete", func(t *testing.T) {
		repo := newRepo(t)

		// when
		updated, err := repo.Update(ctx, Transaction{ID: 999, Kind: Expense, Amount: decimal.NewFromInt(1), Date: types.NewDate(2025, 1, 1)})
		require.NoError(t, err)
		deleted, err := repo.Delete(ctx, 999)
		require.NoError(t, err)

		// then
		assert.False(t, updated)
		assert.False(t, deleted)
	})

	t.Run("should delete every transaction of a category", func(t *testing.T) {
		repo := newRepo(t)

		// given
		for _, category := range []string{"Food", "Food", "Health"} {
			_, err := repo.Store(ctx, newTransaction(Expense, "5", types.NewDate(2025, 3, 1), category))
			require.NoError(t, err)
		}

		// when
		removed, err := repo.DeleteByCategory(ctx, "Food")

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		remaining, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "Health", remaining[0].Category)
	})
}
