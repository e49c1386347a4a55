package stats

import (
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func sumKind(transactions []transaction.Transaction, p types.Period, kind transaction.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.EffectiveKind() == kind && t.InPeriod(p) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func Income(transactions []transaction.Transaction, p types.Period) decimal.Decimal {
	return sumKind(transactions, p, transaction.Income)
}

func Expenses(transactions []transaction.Transaction, p types.Period) decimal.Decimal {
	return sumKind(transactions, p, transaction.Expense)
}

func Balance(transactions []transaction.Transaction, p types.Period) decimal.Decimal {
	return Totals(transactions, p).Balance
}

func Totals(transactions []transaction.Transaction, p types.Period) MonthlyTotals {
	income := Income(transactions, p)
	expenses := Expenses(transactions, p)
	return MonthlyTotals{
		Period:   p,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// PercentChange is (current - previous) / |previous| * 100. It is exactly 0
// when previous is 0, which only means "no prior data".
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred).InexactFloat64()
}

func CompareMonths(transactions []transaction.Transaction, p types.Period) MonthComparison {
	current := Totals(transactions, p)
	previous := Totals(transactions, p.Previous())
	return MonthComparison{
		Current:        current,
		Previous:       previous,
		IncomeChange:   PercentChange(current.Income, previous.Income),
		ExpensesChange: PercentChange(current.Expenses, previous.Expenses),
		BalanceChange:  PercentChange(current.Balance, previous.Balance),
	}
}

// TrailingSeries returns n monthly totals ending at p, oldest first.
func TrailingSeries(transactions []transaction.Transaction, p types.Period, n int) []MonthlyTotals {
	if n <= 0 {
		return []MonthlyTotals{}
	}
	series := make([]MonthlyTotals, n)
	for i := 0; i < n; i++ {
		series[n-1-i] = Totals(transactions, p.AddMonths(-i))
	}
	return series
}

// HasActivity reports whether any month of the series saw a transaction amount.
func HasActivity(series []MonthlyTotals) bool {
	for _, m := range series {
		if !m.Income.IsZero() || !m.Expenses.IsZero() {
			return true
		}
	}
	return false
}
