package stats

import (
	"net/http"

	"github.com/finanzapp/finanzapp/internal/rest"
	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/shopspring/decimal"
)

type TotalsDTO struct {
	Period   types.Period    `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

type BudgetUsageDTO struct {
	BudgetID   int             `json:"budgetId"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
	Status     Status          `json:"status"`
}

type CategoryAmountDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type MonthReportDTO struct {
	Period          types.Period        `json:"period"`
	Current         TotalsDTO           `json:"current"`
	Previous        TotalsDTO           `json:"previous"`
	IncomeChange    float64             `json:"incomeChange"`
	ExpensesChange  float64             `json:"expensesChange"`
	BalanceChange   float64             `json:"balanceChange"`
	TotalBudget     decimal.Decimal     `json:"totalBudget"`
	RemainingBudget decimal.Decimal     `json:"remainingBudget"`
	BudgetUsed      float64             `json:"budgetUsed"`
	Breakdown       []CategoryAmountDTO `json:"breakdown"`
	Budgets         []BudgetUsageDTO    `json:"budgets"`
	BudgetStatus    Status              `json:"budgetStatus"`
	BudgetMessage   string              `json:"budgetMessage"`
	Trend           []TotalsDTO         `json:"trend"`
}

type StatsHandler struct {
	statsService StatsService
}

func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{statsService}
}

// GetStats reports on the month given as ?month=YYYY-MM, the current one by default.
func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	var report MonthReport
	var err error
	if month := r.URL.Query().Get("month"); month != "" {
		p, parseErr := types.ParsePeriod(month)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "'month' must be formatted as YYYY-MM")
			return
		}
		report, err = handler.statsService.GetMonthReport(r.Context(), p)
	} else {
		report, err = handler.statsService.GetCurrentMonthReport(r.Context())
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Storage failure", "Please try again")
		return
	}
	rest.WriteJSON(w, http.StatusOK, reportToDTO(report))
}

func totalsToDTO(t MonthlyTotals) TotalsDTO {
	return TotalsDTO{Period: t.Period, Income: t.Income, Expenses: t.Expenses, Balance: t.Balance}
}

func reportToDTO(report MonthReport) MonthReportDTO {
	breakdown := make([]CategoryAmountDTO, 0, len(report.Breakdown))
	for _, b := range report.Breakdown {
		breakdown = append(breakdown, CategoryAmountDTO{Category: b.Category, Amount: b.Amount})
	}
	budgets := make([]BudgetUsageDTO, 0, len(report.Budgets))
	for _, u := range report.Budgets {
		budgets = append(budgets, BudgetUsageDTO{
			BudgetID:   u.Budget.ID,
			Category:   u.Budget.Category,
			Amount:     u.Budget.Amount,
			Spent:      u.Spent,
			Remaining:  u.Remaining,
			Percentage: u.Percentage,
			Status:     u.Status,
		})
	}
	trend := make([]TotalsDTO, 0, len(report.Trend))
	for _, m := range report.Trend {
		trend = append(trend, totalsToDTO(m))
	}

	comparison := report.Stats.Comparison
	return MonthReportDTO{
		Period:          report.Period,
		Current:         totalsToDTO(comparison.Current),
		Previous:        totalsToDTO(comparison.Previous),
		IncomeChange:    comparison.IncomeChange,
		ExpensesChange:  comparison.ExpensesChange,
		BalanceChange:   comparison.BalanceChange,
		TotalBudget:     report.Stats.TotalBudget,
		RemainingBudget: report.Stats.RemainingBudget,
		BudgetUsed:      report.Stats.BudgetUsed,
		Breakdown:       breakdown,
		Budgets:         budgets,
		BudgetStatus:    report.Summary.Status,
		BudgetMessage:   report.Summary.Message,
		Trend:           trend,
	}
}
