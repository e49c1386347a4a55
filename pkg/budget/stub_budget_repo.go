package budget

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/finanzapp/finanzapp/internal/database"
	"github.com/finanzapp/finanzapp/internal/types"
)

type StubRepository struct {
	mu     sync.Mutex
	nextId int
	data   map[int]Budget
	// Err, when set, is returned by every call.
	Err error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]Budget{}}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	budgets := make([]Budget, 0, len(s.data))
	for _, b := range s.data {
		budgets = append(budgets, b)
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

func (s *StubRepository) FindByCategoryAndPeriod(ctx context.Context, category string, period types.Period) (Budget, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return Budget{}, false, s.Err
	}
	for _, b := range s.data {
		if b.Category == category && b.InPeriod(period) {
			return b, true, nil
		}
	}
	return Budget{}, false, nil
}

func (s *StubRepository) Store(ctx context.Context, budget Budget) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if err := s.checkUnique(budget); err != nil {
		return 0, err
	}
	s.nextId++
	budget.ID = s.nextId
	s.data[budget.ID] = budget
	return budget.ID, nil
}

func (s *StubRepository) Update(ctx context.Context, budget Budget) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	existing, ok := s.data[budget.ID]
	if !ok {
		return false, nil
	}
	if err := s.checkUnique(budget); err != nil {
		return false, err
	}
	budget.CreatedAt = existing.CreatedAt
	s.data[budget.ID] = budget
	return true, nil
}

func (s *StubRepository) checkUnique(budget Budget) error {
	for _, other := range s.data {
		if budget.Collides(other) {
			return fmt.Errorf("store budget %s %s: %w", budget.Category, budget.Period(), database.ErrDuplicate)
		}
	}
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[int]Budget{}
	s.nextId = 0
	s.Err = nil
}
