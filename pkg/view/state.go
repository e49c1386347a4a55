package view

import (
	"sync"
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/budget"
	"github.com/finanzapp/finanzapp/pkg/category"
	"github.com/finanzapp/finanzapp/pkg/stats"
	"github.com/finanzapp/finanzapp/pkg/transaction"
)

// Snapshot is the in-memory copy of the three collections. It is replaced
// whole and never modified in place, so readers may keep it after the lock
// is released.
type Snapshot struct {
	Categories   []category.Category
	Transactions []transaction.Transaction
	Budgets      []budget.Budget
	LoadedAt     time.Time
}

type State struct {
	mu           sync.RWMutex
	snapshot     Snapshot
	view         View
	budgetPeriod types.Period
	filter       stats.TransactionFilter
}

func NewState(budgetPeriod types.Period) *State {
	return &State{
		view:         Dashboard,
		budgetPeriod: budgetPeriod,
		filter:       stats.TransactionFilter{Kind: stats.AllValues, Category: stats.AllValues},
	}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *State) replaceSnapshot(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

func (s *State) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *State) setView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

func (s *State) BudgetPeriod() types.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgetPeriod
}

func (s *State) setBudgetPeriod(p types.Period) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgetPeriod = p
}

func (s *State) Filter() stats.TransactionFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *State) setFilter(f stats.TransactionFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}
