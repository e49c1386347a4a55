package view

import (
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/category"
	"github.com/finanzapp/finanzapp/pkg/stats"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
)

type TransactionRow struct {
	ID           int             `json:"id"`
	Kind         string          `json:"kind"`
	KindLabel    string          `json:"kindLabel"`
	Amount       decimal.Decimal `json:"amount"`
	SignedAmount decimal.Decimal `json:"signedAmount"`
	Date         types.Date      `json:"date"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
}

type BudgetRow struct {
	ID         int             `json:"id"`
	Category   string          `json:"category"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
	Status     stats.Status    `json:"status"`
}

type BreakdownSlice struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
}

type TrendPoint struct {
	Period   types.Period    `json:"period"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

type DashboardModel struct {
	Period          types.Period     `json:"period"`
	PeriodLabel     string           `json:"periodLabel"`
	Income          decimal.Decimal  `json:"income"`
	Expenses        decimal.Decimal  `json:"expenses"`
	Balance         decimal.Decimal  `json:"balance"`
	IncomeChange    float64          `json:"incomeChange"`
	ExpensesChange  float64          `json:"expensesChange"`
	BalanceChange   float64          `json:"balanceChange"`
	TotalBudget     decimal.Decimal  `json:"totalBudget"`
	RemainingBudget decimal.Decimal  `json:"remainingBudget"`
	BudgetUsed      float64          `json:"budgetUsed"`
	Recent          []TransactionRow `json:"recent"`
	Budgets         []BudgetRow      `json:"budgets"`
	Breakdown       []BreakdownSlice `json:"breakdown"`
	Trend           []TrendPoint     `json:"trend"`
	HasTrend        bool             `json:"hasTrend"`
}

type FilterModel struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	// Month is YYYY-MM, empty for every month.
	Month  string `json:"month,omitempty"`
	Search string `json:"search,omitempty"`
}

type TransactionsModel struct {
	Filter          FilterModel      `json:"filter"`
	Rows            []TransactionRow `json:"rows"`
	Income          decimal.Decimal  `json:"income"`
	Expenses        decimal.Decimal  `json:"expenses"`
	CategoryOptions []string         `json:"categoryOptions"`
}

type CategoryCard struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Color            string `json:"color"`
	Icon             string `json:"icon"`
	IsDefault        bool   `json:"isDefault"`
	TransactionCount int    `json:"transactionCount"`
	Deletable        bool   `json:"deletable"`
}

type CategoriesModel struct {
	Cards []CategoryCard `json:"cards"`
}

type BudgetSummaryModel struct {
	TotalBudgeted decimal.Decimal `json:"totalBudgeted"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	Remaining     decimal.Decimal `json:"remaining"`
	Percentage    float64         `json:"percentage"`
	Status        stats.Status    `json:"status"`
	Icon          string          `json:"icon"`
	Message       string          `json:"message"`
}

type BudgetsModel struct {
	Period          types.Period       `json:"period"`
	PeriodLabel     string             `json:"periodLabel"`
	Budgets         []BudgetRow        `json:"budgets"`
	Summary         BudgetSummaryModel `json:"summary"`
	YearOptions     []int              `json:"yearOptions"`
	CategoryOptions []string           `json:"categoryOptions"`
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func toTransactionRow(t transaction.Transaction, categories []category.Category) TransactionRow {
	appearance := category.Lookup(categories, t.Category)
	return TransactionRow{
		ID:           t.ID,
		Kind:         string(t.EffectiveKind()),
		KindLabel:    t.EffectiveKind().Label(),
		Amount:       t.Amount,
		SignedAmount: t.SignedAmount(),
		Date:         t.Date,
		Category:     t.Category,
		Description:  t.Description,
		Color:        appearance.Color,
		Icon:         appearance.Icon,
	}
}

func toTransactionRows(transactions []transaction.Transaction, categories []category.Category) []TransactionRow {
	rows := make([]TransactionRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, toTransactionRow(t, categories))
	}
	return rows
}

func toBudgetRows(usages []stats.BudgetUsage, categories []category.Category) []BudgetRow {
	rows := make([]BudgetRow, 0, len(usages))
	for _, u := range usages {
		appearance := category.Lookup(categories, u.Budget.Category)
		rows = append(rows, BudgetRow{
			ID:         u.Budget.ID,
			Category:   u.Budget.Category,
			Color:      appearance.Color,
			Icon:       appearance.Icon,
			Month:      u.Budget.Month,
			Year:       u.Budget.Year,
			Amount:     u.Budget.Amount,
			Spent:      u.Spent,
			Remaining:  u.Remaining,
			Percentage: u.Percentage,
			Status:     u.Status,
		})
	}
	return rows
}

func toSummaryModel(s stats.BudgetSummary) BudgetSummaryModel {
	return BudgetSummaryModel{
		TotalBudgeted: s.TotalBudgeted,
		TotalSpent:    s.TotalSpent,
		Remaining:     s.Remaining,
		Percentage:    s.Percentage,
		Status:        s.Status,
		Icon:          s.Icon,
		Message:       s.Message,
	}
}
