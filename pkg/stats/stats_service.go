package stats

import (
	"context"
	"fmt"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/internal/utils"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// MonthReport is everything computed for one month straight from storage.
type MonthReport struct {
	Period    types.Period
	Stats     FinancialStats
	Breakdown []CategoryAmount
	Budgets   []BudgetUsage
	Summary   BudgetSummary
	Trend     []MonthlyTotals
}

type StatsService interface {
	GetMonthReport(ctx context.Context, p types.Period) (MonthReport, error)
	GetCurrentMonthReport(ctx context.Context) (MonthReport, error)
}

// StatsServiceImpl reads only the window it needs instead of a full snapshot.
type StatsServiceImpl struct {
	transactionRepo transaction.Repository
	budgetRepo      budget.Repository
	clock           utils.Clock
}

func NewStatsServiceImpl(transactionRepo transaction.Repository, budgetRepo budget.Repository, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		clock:           clock,
	}
}

func (s *StatsServiceImpl) GetCurrentMonthReport(ctx context.Context) (MonthReport, error) {
	return s.GetMonthReport(ctx, utils.CurrentPeriod(s.clock))
}

func (s *StatsServiceImpl) GetMonthReport(ctx context.Context, p types.Period) (MonthReport, error) {
	oldest := p.AddMonths(-(TrailingMonths - 1))
	transactions, err := s.transactionRepo.Find(ctx, transaction.Criteria{
		From: oldest.Start(),
		To:   types.DateOf(p.AddMonths(1).Start().AddDate(0, 0, -1)),
	})
	if err != nil {
		log.Errorf("failed to load transactions for %s: %v", p, err)
		return MonthReport{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	all, err := s.budgetRepo.GetAll(ctx)
	if err != nil {
		log.Errorf("failed to load budgets for %s: %v", p, err)
		return MonthReport{}, fmt.Errorf("failed to load budgets: %w", err)
	}
	budgets := budget.InPeriod(all, p)

	log.Debugf("Computing report for %s from %d transactions and %d budgets", p, len(transactions), len(budgets))
	return MonthReport{
		Period:    p,
		Stats:     Compute(transactions, budgets, p),
		Breakdown: SortedBreakdown(CategoryBreakdown(transactions, p)),
		Budgets:   Usages(budgets, transactions, p),
		Summary:   SummarizeBudgets(budgets, transactions, p),
		Trend:     TrailingSeries(transactions, p, TrailingMonths),
	}, nil
}
