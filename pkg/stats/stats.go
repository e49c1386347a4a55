package stats

import (
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/shopspring/decimal"
)

// TrailingMonths is the length of the balance trend shown on the dashboard.
const TrailingMonths = 6

type MonthlyTotals struct {
	Period   types.Period
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

type MonthComparison struct {
	Current  MonthlyTotals
	Previous MonthlyTotals
	// Changes are percentages, 0 whenever the previous value is 0.
	IncomeChange   float64
	ExpensesChange float64
	BalanceChange  float64
}

type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

const (
	WarningThreshold = 70.0
	DangerThreshold  = 90.0
)

type BudgetUsage struct {
	Budget     budget.Budget
	Spent      decimal.Decimal
	Percentage float64
	// Remaining goes negative on overspend.
	Remaining decimal.Decimal
	Status    Status
}

type BudgetSummary struct {
	Period        types.Period
	TotalBudgeted decimal.Decimal
	TotalSpent    decimal.Decimal
	Remaining     decimal.Decimal
	Percentage    float64
	Status        Status
	Icon          string
	Message       string
}

type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

type FinancialStats struct {
	Comparison MonthComparison
	// TotalBudget sums the budgets of the month, RemainingBudget is what is
	// left of it after all expenses of the month.
	TotalBudget     decimal.Decimal
	RemainingBudget decimal.Decimal
	BudgetUsed      float64
}
