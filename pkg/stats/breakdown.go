package stats

import (
	"sort"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
)

// BreakdownByKind sums the transactions of one kind per category within p.
// Categories without a matching transaction are absent.
func BreakdownByKind(transactions []transaction.Transaction, p types.Period, kind transaction.Kind) map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.EffectiveKind() != kind || !t.InPeriod(p) {
			continue
		}
		breakdown[t.Category] = breakdown[t.Category].Add(t.Amount)
	}
	for name, amount := range breakdown {
		if amount.IsZero() {
			delete(breakdown, name)
		}
	}
	return breakdown
}

func CategoryBreakdown(transactions []transaction.Transaction, p types.Period) map[string]decimal.Decimal {
	return BreakdownByKind(transactions, p, transaction.Expense)
}

// SortedBreakdown orders a breakdown by amount descending, then by name.
func SortedBreakdown(breakdown map[string]decimal.Decimal) []CategoryAmount {
	result := make([]CategoryAmount, 0, len(breakdown))
	for name, amount := range breakdown {
		result = append(result, CategoryAmount{Category: name, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Amount.Cmp(result[j].Amount); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// CountByCategory counts transactions of every kind and period per category.
func CountByCategory(transactions []transaction.Transaction) map[string]int {
	counts := make(map[string]int)
	for _, t := range transactions {
		counts[t.Category]++
	}
	return counts
}
