package transaction

import (
	"fmt"
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

func ParseKind(s string) (Kind, error) {
	if k := Kind(s); k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (k Kind) Label() string {
	if k == Income {
		return "Income"
	}
	return "Expense"
}

type Transaction struct {
	ID          int
	Kind        Kind
	Amount      decimal.Decimal
	Date        types.Date
	Category    string
	Description string
	// Month is zero-based. Month and Year always mirror Date.
	Month     int
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithDefaults fills missing fields: kind expense, date today and timestamps.
// Amount stays at its zero value. Nothing is validated here.
func (t Transaction) WithDefaults(now time.Time) Transaction {
	if t.Kind == "" {
		t.Kind = Expense
	}
	if t.Date.IsZero() {
		t.Date = types.DateOf(now)
	}
	if t.Year == 0 {
		t = t.SyncPeriod()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	return t
}

// SyncPeriod re-derives Month and Year from Date.
func (t Transaction) SyncPeriod() Transaction {
	p := t.Date.Period()
	t.Month = p.Month
	t.Year = p.Year
	return t
}

// Period falls back to the period of Date when Month and Year were never
// set, and to the current month when Date is missing too.
func (t Transaction) Period() types.Period {
	if t.Year != 0 {
		return types.Period{Month: t.Month, Year: t.Year}
	}
	if !t.Date.IsZero() {
		return t.Date.Period()
	}
	return types.PeriodOf(time.Now())
}

func (t Transaction) InPeriod(p types.Period) bool {
	return t.Period() == p
}

// EffectiveKind treats a missing kind as an expense.
func (t Transaction) EffectiveKind() Kind {
	if t.Kind == "" {
		return Expense
	}
	return t.Kind
}

func (t Transaction) IsIncome() bool {
	return t.EffectiveKind() == Income
}

func (t Transaction) IsExpense() bool {
	return t.EffectiveKind() == Expense
}

// SignedAmount is negative for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// SampleTransactions are inserted on a first run without any recorded activity.
func SampleTransactions(now time.Time) []Transaction {
	return []Transaction{
		Transaction{
			Kind:        Income,
			Amount:      decimal.RequireFromString("2850.00"),
			Category:    "Salary",
			Description: "Monthly salary",
		}.WithDefaults(now),
		Transaction{
			Kind:        Expense,
			Amount:      decimal.RequireFromString("450.50"),
			Category:    "Food",
			Description: "Weekly groceries",
		}.WithDefaults(now),
	}
}
