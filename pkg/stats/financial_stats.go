package stats

import (
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
)

// Compute derives the summary figures of a month.
func Compute(transactions []transaction.Transaction, budgets []budget.Budget, p types.Period) FinancialStats {
	comparison := CompareMonths(transactions, p)
	totalBudget := decimal.Zero
	for _, b := range budgets {
		if b.InPeriod(p) {
			totalBudget = totalBudget.Add(b.Amount)
		}
	}
	return FinancialStats{
		Comparison:      comparison,
		TotalBudget:     totalBudget,
		RemainingBudget: totalBudget.Sub(comparison.Current.Expenses),
		BudgetUsed:      ratio(comparison.Current.Expenses, totalBudget),
	}
}
