package stats

import (
	"math"
	"testing"
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march2024 = types.Period{Month: 2, Year: 2024}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(id int, kind transaction.Kind, amount string, date types.Date, category string) transaction.Transaction {
	return transaction.Transaction{
		ID:       id,
		Kind:     kind,
		Amount:   dec(amount),
		Date:     date,
		Category: category,
	}.SyncPeriod()
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestScenario_FoodBudgetInMarch(t *testing.T) {
	// given
	transactions := []transaction.Transaction{
		tx(1, transaction.Expense, "100", types.NewDate(2024, time.March, 5), "Food"),
		tx(2, transaction.Income, "2000", types.NewDate(2024, time.March, 1), "Salary"),
	}
	food := budget.Budget{ID: 1, Category: "Food", Amount: dec("150"), Month: 2, Year: 2024}

	// when
	totals := Totals(transactions, march2024)
	usage := Usage(food, transactions)

	// then
	assertDecimal(t, "2000", totals.Income)
	assertDecimal(t, "100", totals.Expenses)
	assertDecimal(t, "1900", totals.Balance)
	assertDecimal(t, "100", usage.Spent)
	assert.InDelta(t, 66.67, usage.Percentage, 0.01)
	assert.Equal(t, StatusGood, usage.Status)
	assertDecimal(t, "50", usage.Remaining)
}

func TestScenario_TransactionsWithOnlyDate(t *testing.T) {
	// given
	transactions := []transaction.Transaction{
		{ID: 1, Kind: transaction.Income, Amount: dec("2000"), Date: types.NewDate(2024, time.March, 1), Category: "Salary"},
		{ID: 2, Kind: transaction.Expense, Amount: dec("100"), Date: types.NewDate(2024, time.March, 5), Category: "Food"},
	}
	food := budget.Budget{ID: 1, Category: "Food", Amount: dec("150"), Month: 2, Year: 2024}

	// when
	income := Income(transactions, march2024)
	expenses := Expenses(transactions, march2024)
	breakdown := CategoryBreakdown(transactions, march2024)
	usage := Usage(food, transactions)
	filtered := Filter(transactions, TransactionFilter{Period: &march2024})

	// then
	assertDecimal(t, "2000", income)
	assertDecimal(t, "100", expenses)
	require.Len(t, breakdown, 1)
	assertDecimal(t, "100", breakdown["Food"])
	assertDecimal(t, "100", usage.Spent)
	assert.Len(t, filtered, 2)
}

func TestTotals(t *testing.T) {
	t.Run("should be zero for empty input", func(t *testing.T) {
		totals := Totals(nil, march2024)

		assert.True(t, totals.Income.IsZero())
		assert.True(t, totals.Expenses.IsZero())
		assert.True(t, totals.Balance.IsZero())
	})

	t.Run("should keep balance equal to income minus expenses", func(t *testing.T) {
		transactions := []transaction.Transaction{
			tx(1, transaction.Income, "1200.10", types.NewDate(2024, 3, 1), "Salary"),
			tx(2, transaction.Expense, "0.10", types.NewDate(2024, 3, 2), "Food"),
			tx(3, transaction.Expense, "1500", types.NewDate(2024, 3, 31), "Transport"),
			tx(4, transaction.Income, "999", types.NewDate(2024, 4, 1), "Salary"),
			{ID: 5, Amount: dec("7"), Date: types.NewDate(2024, 3, 15), Month: 2, Year: 2024, Category: "Food"},
		}

		for _, p := range []types.Period{march2024, march2024.AddMonths(1), march2024.Previous()} {
			assert.True(t, Balance(transactions, p).Equal(Income(transactions, p).Sub(Expenses(transactions, p))), p.String())
		}
		assertDecimal(t, "1507.10", Expenses(transactions, march2024))
		assertDecimal(t, "-307", Balance(transactions, march2024))
	})
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string
		want     float64
	}{
		{"growth", "150", "100", 50},
		{"decline", "50", "100", -50},
		{"previous zero is floored", "500", "0", 0},
		{"both zero", "0", "0", 0},
		{"negative previous balance improving", "100", "-200", 150},
		{"negative previous balance worsening", "-300", "-200", -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentChange(dec(tt.current), dec(tt.previous))

			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
		})
	}
}

func TestCompareMonths(t *testing.T) {
	t.Run("should compare january against december of the previous year", func(t *testing.T) {
		// given
		transactions := []transaction.Transaction{
			tx(1, transaction.Income, "1000", types.NewDate(2024, time.December, 10), "Salary"),
			tx(2, transaction.Expense, "400", types.NewDate(2024, time.December, 11), "Food"),
			tx(3, transaction.Income, "1500", types.NewDate(2025, time.January, 10), "Salary"),
			tx(4, transaction.Expense, "200", types.NewDate(2025, time.January, 11), "Food"),
		}

		// when
		comparison := CompareMonths(transactions, types.Period{Month: 0, Year: 2025})

		// then
		assert.Equal(t, types.Period{Month: 11, Year: 2024}, comparison.Previous.Period)
		assert.InDelta(t, 50.0, comparison.IncomeChange, 1e-9)
		assert.InDelta(t, -50.0, comparison.ExpensesChange, 1e-9)
		assert.InDelta(t, 116.6666, comparison.BalanceChange, 1e-3)
	})

	t.Run("should floor changes without previous data", func(t *testing.T) {
		transactions := []transaction.Transaction{
			tx(1, transaction.Income, "1000", types.NewDate(2024, 3, 10), "Salary"),
		}

		comparison := CompareMonths(transactions, march2024)

		assert.Zero(t, comparison.IncomeChange)
		assert.Zero(t, comparison.ExpensesChange)
		assert.Zero(t, comparison.BalanceChange)
	})
}

func TestCategoryBreakdown(t *testing.T) {
	// given
	transactions := []transaction.Transaction{
		tx(1, transaction.Expense, "10.50", types.NewDate(2024, 3, 1), "Food"),
		tx(2, transaction.Expense, "4.50", types.NewDate(2024, 3, 2), "Food"),
		tx(3, transaction.Expense, "30", types.NewDate(2024, 3, 3), "Transport"),
		tx(4, transaction.Income, "2000", types.NewDate(2024, 3, 1), "Salary"),
		tx(5, transaction.Expense, "99", types.NewDate(2024, 2, 1), "Health"),
	}

	// when
	breakdown := CategoryBreakdown(transactions, march2024)

	// then
	require.Len(t, breakdown, 2)
	assertDecimal(t, "15", breakdown["Food"])
	assertDecimal(t, "30", breakdown["Transport"])
	assert.NotContains(t, breakdown, "Health")
	assert.NotContains(t, breakdown, "Salary")

	sum := decimal.Zero
	for _, amount := range breakdown {
		sum = sum.Add(amount)
	}
	assert.True(t, sum.Equal(Expenses(transactions, march2024)))

	sorted := SortedBreakdown(breakdown)
	require.Len(t, sorted, 2)
	assert.Equal(t, "Transport", sorted[0].Category)
	assert.Equal(t, "Food", sorted[1].Category)

	income := BreakdownByKind(transactions, march2024, transaction.Income)
	assertDecimal(t, "2000", income["Salary"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		percentage float64
		want       Status
	}{
		{0, StatusGood},
		{69.99, StatusGood},
		{70.00, StatusWarning},
		{89.99, StatusWarning},
		{90.00, StatusDanger},
		{250, StatusDanger},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.percentage), "%.2f", tt.percentage)
	}
}

func TestUsage(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(1, transaction.Expense, "90", types.NewDate(2024, 3, 5), "Food"),
		tx(2, transaction.Expense, "60", types.NewDate(2024, 3, 6), "Food"),
		tx(3, transaction.Expense, "500", types.NewDate(2024, 4, 6), "Food"),
		tx(4, transaction.Income, "500", types.NewDate(2024, 3, 6), "Food"),
	}

	t.Run("should report overspend as negative remaining", func(t *testing.T) {
		usage := Usage(budget.Budget{Category: "Food", Amount: dec("100"), Month: 2, Year: 2024}, transactions)

		assertDecimal(t, "150", usage.Spent)
		assertDecimal(t, "-50", usage.Remaining)
		assert.InDelta(t, 150.0, usage.Percentage, 1e-9)
		assert.Equal(t, StatusDanger, usage.Status)
	})

	t.Run("should keep percentage at zero for a zero budget", func(t *testing.T) {
		usage := Usage(budget.Budget{Category: "Food", Amount: decimal.Zero, Month: 2, Year: 2024}, transactions)

		assert.Zero(t, usage.Percentage)
		assert.Equal(t, StatusGood, usage.Status)
		assertDecimal(t, "-150", usage.Remaining)
	})

	t.Run("should hold the remaining and percentage identities", func(t *testing.T) {
		for _, amount := range []string{"1", "150", "200", "1000.01"} {
			b := budget.Budget{Category: "Food", Amount: dec(amount), Month: 2, Year: 2024}
			usage := Usage(b, transactions)

			assert.True(t, usage.Remaining.Equal(b.Amount.Sub(usage.Spent)))
			assert.InDelta(t, usage.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).InexactFloat64(), usage.Percentage, 1e-9)
		}
	})
}

func TestSummarizeBudgets(t *testing.T) {
	// given
	transactions := []transaction.Transaction{
		tx(1, transaction.Expense, "450", types.NewDate(2024, 3, 5), "Food"),
		tx(2, transaction.Expense, "100", types.NewDate(2024, 3, 5), "Transport"),
		tx(3, transaction.Expense, "5000", types.NewDate(2024, 3, 5), "Leisure"),
	}
	budgets := []budget.Budget{
		{ID: 1, Category: "Food", Amount: dec("600"), Month: 2, Year: 2024},
		{ID: 2, Category: "Transport", Amount: dec("200"), Month: 2, Year: 2024},
		{ID: 3, Category: "Food", Amount: dec("999"), Month: 3, Year: 2024},
	}

	// when
	summary := SummarizeBudgets(budgets, transactions, march2024)

	// then
	assertDecimal(t, "800", summary.TotalBudgeted)
	assertDecimal(t, "550", summary.TotalSpent)
	assertDecimal(t, "250", summary.Remaining)
	assert.InDelta(t, 68.75, summary.Percentage, 1e-9)
	assert.Equal(t, StatusGood, summary.Status)
	assert.Equal(t, "Everything under control", summary.Message)

	empty := SummarizeBudgets(nil, transactions, march2024)
	assert.Zero(t, empty.Percentage)
	assert.True(t, empty.TotalSpent.IsZero())

	tight := SummarizeBudgets(budgets[:1], transactions, march2024)
	assert.Equal(t, StatusWarning, tight.Status)
	assert.Equal(t, "fa-exclamation-triangle", tight.Icon)
}

func TestTrailingSeries(t *testing.T) {
	// given
	transactions := []transaction.Transaction{
		tx(1, transaction.Income, "100", types.NewDate(2024, time.October, 1), "Salary"),
		tx(2, transaction.Expense, "30", types.NewDate(2025, time.February, 1), "Food"),
		tx(3, transaction.Income, "999", types.NewDate(2025, time.March, 1), "Salary"),
	}

	// when
	series := TrailingSeries(transactions, types.Period{Month: 1, Year: 2025}, TrailingMonths)

	// then
	require.Len(t, series, 6)
	assert.Equal(t, types.Period{Month: 8, Year: 2024}, series[0].Period)
	assert.Equal(t, types.Period{Month: 1, Year: 2025}, series[5].Period)
	assertDecimal(t, "100", series[1].Balance)
	assertDecimal(t, "-30", series[5].Balance)
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Period.AddMonths(1), series[i].Period)
	}
	assert.True(t, HasActivity(series))
	assert.False(t, HasActivity(TrailingSeries(nil, march2024, TrailingMonths)))
	assert.Empty(t, TrailingSeries(transactions, march2024, 0))
}

func TestCompute(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(1, transaction.Income, "2850", types.NewDate(2024, 3, 1), "Salary"),
		tx(2, transaction.Expense, "450.50", types.NewDate(2024, 3, 2), "Food"),
	}
	budgets := []budget.Budget{
		{Category: "Food", Amount: dec("600"), Month: 2, Year: 2024},
		{Category: "Transport", Amount: dec("200"), Month: 2, Year: 2024},
	}

	stats := Compute(transactions, budgets, march2024)

	assertDecimal(t, "2399.50", stats.Comparison.Current.Balance)
	assertDecimal(t, "800", stats.TotalBudget)
	assertDecimal(t, "349.50", stats.RemainingBudget)
	assert.InDelta(t, 56.3125, stats.BudgetUsed, 1e-9)
}
