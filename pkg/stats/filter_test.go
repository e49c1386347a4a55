package stats

import (
	"testing"
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(transactions []transaction.Transaction) []int {
	result := make([]int, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, t.ID)
	}
	return result
}

func sampleList() []transaction.Transaction {
	list := []transaction.Transaction{
		tx(1, transaction.Expense, "10", types.NewDate(2024, 3, 5), "Food"),
		tx(2, transaction.Income, "2000", types.NewDate(2024, 3, 1), "Salary"),
		tx(3, transaction.Expense, "25", types.NewDate(2024, 3, 5), "Transport"),
		tx(4, transaction.Expense, "7", types.NewDate(2024, 2, 20), "Food"),
		tx(5, transaction.Expense, "12", types.NewDate(2024, 3, 5), "Food"),
	}
	list[0].Description = "Weekly groceries"
	list[2].Description = "Bus pass"
	list[4].Description = "Bakery"
	return list
}

func TestFilter(t *testing.T) {
	t.Run("should sort by date descending keeping source order on ties", func(t *testing.T) {
		result := Filter(sampleList(), TransactionFilter{Kind: AllValues, Category: AllValues})

		assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(result))
	})

	t.Run("should filter by kind and category", func(t *testing.T) {
		result := Filter(sampleList(), TransactionFilter{Kind: "expense", Category: "Food"})

		assert.Equal(t, []int{1, 5, 4}, ids(result))
	})

	t.Run("should compose filters in any order", func(t *testing.T) {
		list := sampleList()

		byKindThenCategory := Filter(Filter(list, TransactionFilter{Kind: "expense"}), TransactionFilter{Category: "Food"})
		byCategoryThenKind := Filter(Filter(list, TransactionFilter{Category: "Food"}), TransactionFilter{Kind: "expense"})
		combined := Filter(list, TransactionFilter{Kind: "expense", Category: "Food"})

		assert.Equal(t, ids(combined), ids(byKindThenCategory))
		assert.Equal(t, ids(combined), ids(byCategoryThenKind))
	})

	t.Run("should restrict to a single month", func(t *testing.T) {
		february := types.Period{Month: 1, Year: 2024}

		result := Filter(sampleList(), TransactionFilter{Period: &february})

		assert.Equal(t, []int{4}, ids(result))
	})

	t.Run("should search description or category ignoring case", func(t *testing.T) {
		list := sampleList()

		assert.Equal(t, []int{1}, ids(Filter(list, TransactionFilter{Search: "GROCER"})))
		assert.Equal(t, []int{3}, ids(Filter(list, TransactionFilter{Search: "transp"})))
		assert.Equal(t, []int{2}, ids(Filter(list, TransactionFilter{Search: " salary "})))
		assert.Empty(t, Filter(list, TransactionFilter{Search: "rent"}))
	})

	t.Run("should not modify the source", func(t *testing.T) {
		list := sampleList()

		Filter(list, TransactionFilter{})

		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(list))
	})
}

func TestRecent(t *testing.T) {
	list := sampleList()
	list = append(list, tx(6, transaction.Expense, "1", types.NewDate(2024, time.March, 30), "Other"))

	result := Recent(list, 5)

	require.Len(t, result, 5)
	assert.Equal(t, []int{6, 1, 3, 5, 2}, ids(result))
	assert.Len(t, Recent(list[:2], 5), 2)
}

func TestSumByKind(t *testing.T) {
	income, expenses := SumByKind(sampleList())

	assertDecimal(t, "2000", income)
	assertDecimal(t, "54", expenses)
}

func TestCountByCategory(t *testing.T) {
	counts := CountByCategory(sampleList())

	assert.Equal(t, 3, counts["Food"])
	assert.Equal(t, 1, counts["Transport"])
	assert.Zero(t, counts["Health"])
}
