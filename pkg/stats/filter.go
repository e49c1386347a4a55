package stats

import (
	"sort"
	"strings"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
)

// AllValues is the selector value that disables the kind or category filter.
const AllValues = "all"

type TransactionFilter struct {
	Kind     string
	Category string
	Period   *types.Period
	Search   string
}

func (f TransactionFilter) matches(t transaction.Transaction, search string) bool {
	if f.Kind != "" && f.Kind != AllValues && string(t.EffectiveKind()) != f.Kind {
		return false
	}
	if f.Category != "" && f.Category != AllValues && t.Category != f.Category {
		return false
	}
	if f.Period != nil && !t.InPeriod(*f.Period) {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(t.Description), search) &&
		!strings.Contains(strings.ToLower(t.Category), search) {
		return false
	}
	return true
}

// Filter applies every set criterion and returns a new slice sorted by date,
// newest first. Transactions on the same day keep their source order.
func Filter(transactions []transaction.Transaction, f TransactionFilter) []transaction.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	result := make([]transaction.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.matches(t, search) {
			result = append(result, t)
		}
	}
	SortByDateDesc(result)
	return result
}

func SortByDateDesc(transactions []transaction.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}

// Recent returns the n newest transactions.
func Recent(transactions []transaction.Transaction, n int) []transaction.Transaction {
	sorted := Filter(transactions, TransactionFilter{})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SumByKind totals an already filtered list regardless of period.
func SumByKind(transactions []transaction.Transaction) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if t.IsIncome() {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}
