package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/category"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// Gateway is the only writer of durable state. Each collection has its own
// repository and every call is its own storage scope.
type Gateway struct {
	Categories   category.Repository
	Transactions transaction.Repository
	Budgets      budget.Repository
}

func NewSQLGateway(db *database.DB) *Gateway {
	return &Gateway{
		Categories:   category.NewRepository(db),
		Transactions: transaction.NewRepository(db),
		Budgets:      budget.NewRepository(db),
	}
}

// StubGateway keeps the concrete stubs reachable so tests can inject failures.
type StubGateway struct {
	*Gateway
	CategoryStub    *category.StubRepository
	TransactionStub *transaction.StubRepository
	BudgetStub      *budget.StubRepository
}

func NewStubGateway() *StubGateway {
	c := category.NewStubRepository()
	t := transaction.NewStubRepository()
	b := budget.NewStubRepository()
	return &StubGateway{
		Gateway:         &Gateway{Categories: c, Transactions: t, Budgets: b},
		CategoryStub:    c,
		TransactionStub: t,
		BudgetStub:      b,
	}
}

func (s *StubGateway) Cleanup() {
	s.CategoryStub.Cleanup()
	s.TransactionStub.Cleanup()
	s.BudgetStub.Cleanup()
}

// SeedDefaults inserts every default category that is missing. It is safe to
// run repeatedly and concurrently: a duplicate reported by the store means
// another seeder got there first.
func (g *Gateway) SeedDefaults(ctx context.Context, now time.Time) (int, error) {
	inserted := 0
	for _, c := range category.DefaultCategories() {
		_, found, err := g.Categories.FindByName(ctx, c.Name)
		if err != nil {
			return inserted, fmt.Errorf("seed default categories: %w", err)
		}
		if found {
			continue
		}
		if _, err := g.Categories.Store(ctx, c.WithDefaults(now)); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				log.Debugf("default category %s already seeded", c.Name)
				continue
			}
			return inserted, fmt.Errorf("seed default categories: %w", err)
		}
		inserted++
	}
	if inserted > 0 {
		log.Infof("Seeded %d default categories", inserted)
	}
	return inserted, nil
}

// SeedSampleData inserts the sample transactions and budgets, but only into a
// store that has no transactions yet. It reports whether anything was written.
func (g *Gateway) SeedSampleData(ctx context.Context, now time.Time) (bool, error) {
	existing, err := g.Transactions.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("seed sample data: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, t := range transaction.SampleTransactions(now) {
		if _, err := g.Transactions.Store(ctx, t); err != nil {
			return false, fmt.Errorf("seed sample transactions: %w", err)
		}
	}
	for _, b := range budget.SampleBudgets(now) {
		if _, err := g.Budgets.Store(ctx, b); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				continue
			}
			return false, fmt.Errorf("seed sample budgets: %w", err)
		}
	}
	log.Info("Seeded sample transactions and budgets")
	return true, nil
}
