package stats

import (
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
)

// StatusFor tiers a usage percentage. Thresholds belong to the higher tier.
func StatusFor(percentage float64) Status {
	switch {
	case percentage >= DangerThreshold:
		return StatusDanger
	case percentage >= WarningThreshold:
		return StatusWarning
	default:
		return StatusGood
	}
}

func ratio(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}

func spentOn(transactions []transaction.Transaction, category string, p types.Period) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range transactions {
		if t.IsExpense() && t.Category == category && t.InPeriod(p) {
			spent = spent.Add(t.Amount)
		}
	}
	return spent
}

// Usage compares a budget against the expenses of its category and month.
func Usage(b budget.Budget, transactions []transaction.Transaction) BudgetUsage {
	spent := spentOn(transactions, b.Category, b.Period())
	percentage := ratio(spent, b.Amount)
	return BudgetUsage{
		Budget:     b,
		Spent:      spent,
		Percentage: percentage,
		Remaining:  b.Amount.Sub(spent),
		Status:     StatusFor(percentage),
	}
}

// Usages evaluates every budget of p, keeping the input order.
func Usages(budgets []budget.Budget, transactions []transaction.Transaction, p types.Period) []BudgetUsage {
	usages := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		if b.InPeriod(p) {
			usages = append(usages, Usage(b, transactions))
		}
	}
	return usages
}

// SummarizeBudgets aggregates the budgets of p. Spending on categories
// without a budget is not counted.
func SummarizeBudgets(budgets []budget.Budget, transactions []transaction.Transaction, p types.Period) BudgetSummary {
	totalBudgeted := decimal.Zero
	totalSpent := decimal.Zero
	for _, u := range Usages(budgets, transactions, p) {
		totalBudgeted = totalBudgeted.Add(u.Budget.Amount)
		totalSpent = totalSpent.Add(u.Spent)
	}
	percentage := ratio(totalSpent, totalBudgeted)
	status := StatusFor(percentage)
	summary := BudgetSummary{
		Period:        p,
		TotalBudgeted: totalBudgeted,
		TotalSpent:    totalSpent,
		Remaining:     totalBudgeted.Sub(totalSpent),
		Percentage:    percentage,
		Status:        status,
	}
	switch status {
	case StatusDanger:
		summary.Icon = "fa-exclamation-circle"
		summary.Message = "Careful! You have used over 90% of your budget"
	case StatusWarning:
		summary.Icon = "fa-exclamation-triangle"
		summary.Message = "You are close to your budget limit"
	default:
		summary.Icon = "fa-check-circle"
		summary.Message = "Everything under control"
	}
	return summary
}
