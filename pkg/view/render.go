package view

import (
	"sort"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/category"
	"github.com/finanzapp/finanzapp/pkg/stats"
)

const recentLimit = 5

func buildDashboard(s Snapshot, p types.Period) DashboardModel {
	fs := stats.Compute(s.Transactions, s.Budgets, p)
	current := fs.Comparison.Current

	breakdown := stats.SortedBreakdown(stats.CategoryBreakdown(s.Transactions, p))
	slices := make([]BreakdownSlice, 0, len(breakdown))
	for _, b := range breakdown {
		slices = append(slices, BreakdownSlice{
			Category: b.Category,
			Amount:   b.Amount,
			Color:    category.Lookup(s.Categories, b.Category).Color,
		})
	}

	series := stats.TrailingSeries(s.Transactions, p, stats.TrailingMonths)
	trend := make([]TrendPoint, 0, len(series))
	for _, m := range series {
		trend = append(trend, TrendPoint{
			Period:   m.Period,
			Label:    m.Period.Label(),
			Income:   m.Income,
			Expenses: m.Expenses,
			Balance:  m.Balance,
		})
	}

	return DashboardModel{
		Period:          p,
		PeriodLabel:     p.Label(),
		Income:          current.Income,
		Expenses:        current.Expenses,
		Balance:         current.Balance,
		IncomeChange:    fs.Comparison.IncomeChange,
		ExpensesChange:  fs.Comparison.ExpensesChange,
		BalanceChange:   fs.Comparison.BalanceChange,
		TotalBudget:     fs.TotalBudget,
		RemainingBudget: fs.RemainingBudget,
		BudgetUsed:      fs.BudgetUsed,
		Recent:          toTransactionRows(stats.Recent(s.Transactions, recentLimit), s.Categories),
		Budgets:         toBudgetRows(stats.Usages(s.Budgets, s.Transactions, p), s.Categories),
		Breakdown:       slices,
		Trend:           trend,
		HasTrend:        stats.HasActivity(series),
	}
}

func buildTransactions(s Snapshot, f stats.TransactionFilter) TransactionsModel {
	filtered := stats.Filter(s.Transactions, f)
	income, expenses := stats.SumByKind(filtered)
	return TransactionsModel{
		Filter:          toFilterModel(f),
		Rows:            toTransactionRows(filtered, s.Categories),
		Income:          income,
		Expenses:        expenses,
		CategoryOptions: category.Names(s.Categories),
	}
}

func toFilterModel(f stats.TransactionFilter) FilterModel {
	m := FilterModel{Kind: f.Kind, Category: f.Category, Search: f.Search}
	if m.Kind == "" {
		m.Kind = stats.AllValues
	}
	if m.Category == "" {
		m.Category = stats.AllValues
	}
	if f.Period != nil {
		m.Month = f.Period.String()
	}
	return m
}

// buildCategories lists the default categories in their fixed order first,
// followed by custom ones in the order they were created.
func buildCategories(s Snapshot) CategoriesModel {
	counts := stats.CountByCategory(s.Transactions)
	ordered := make([]category.Category, len(s.Categories))
	copy(ordered, s.Categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, di := defaultRank(ordered[i])
		pj, dj := defaultRank(ordered[j])
		if di != dj {
			return di
		}
		if di {
			return pi < pj
		}
		return ordered[i].ID < ordered[j].ID
	})

	cards := make([]CategoryCard, 0, len(ordered))
	for _, c := range ordered {
		cards = append(cards, CategoryCard{
			ID:               c.ID,
			Name:             c.Name,
			Color:            c.Color,
			Icon:             c.Icon,
			IsDefault:        c.IsDefault,
			TransactionCount: counts[c.Name],
			Deletable:        !category.IsReserved(c.Name),
		})
	}
	return CategoriesModel{Cards: cards}
}

func defaultRank(c category.Category) (int, bool) {
	if !c.IsDefault {
		return 0, false
	}
	return category.DefaultPosition(c.Name)
}

func buildBudgets(s Snapshot, p types.Period, currentYear int) BudgetsModel {
	usages := stats.Usages(s.Budgets, s.Transactions, p)
	return BudgetsModel{
		Period:          p,
		PeriodLabel:     p.Label(),
		Budgets:         toBudgetRows(usages, s.Categories),
		Summary:         toSummaryModel(stats.SummarizeBudgets(s.Budgets, s.Transactions, p)),
		YearOptions:     yearOptions(currentYear, p.Year),
		CategoryOptions: category.Names(s.Categories),
	}
}

// yearOptions spans one year back and two ahead of the current one, plus the
// selected year when it falls outside that range.
func yearOptions(currentYear, selected int) []int {
	years := make([]int, 0, 5)
	for y := currentYear - 1; y <= currentYear+2; y++ {
		years = append(years, y)
	}
	if selected < currentYear-1 || selected > currentYear+2 {
		years = append(years, selected)
		sort.Ints(years)
	}
	return years
}
