package transaction

import (
	"context"
	"sort"
	"sync"
)

type StubRepository struct {
	mu     sync.Mutex
	nextId int
	data   map[int]Transaction
	// Err, when set, is returned by every call.
	Err error
	// DeleteByCategoryErr fails only the cascade step.
	DeleteByCategoryErr error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]Transaction{}}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Transaction, error) {
	return s.Find(ctx, Criteria{})
}

func (s *StubRepository) Find(ctx context.Context, criteria Criteria) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	transactions := make([]Transaction, 0, len(s.data))
	for _, t := range s.data {
		if criteria.Matches(t) {
			transactions = append(transactions, t)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

func (s *StubRepository) Store(ctx context.Context, transaction Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	s.nextId++
	transaction.ID = s.nextId
	s.data[transaction.ID] = transaction.SyncPeriod()
	return transaction.ID, nil
}

func (s *StubRepository) Update(ctx context.Context, transaction Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	existing, ok := s.data[transaction.ID]
	if !ok {
		return false, nil
	}
	transaction.CreatedAt = existing.CreatedAt
	s.data[transaction.ID] = transaction.SyncPeriod()
	return true, nil
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

func (s *StubRepository) DeleteByCategory(ctx context.Context, category string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if s.DeleteByCategoryErr != nil {
		return 0, s.DeleteByCategoryErr
	}
	removed := 0
	for id, t := range s.data {
		if t.Category == category {
			delete(s.data, id)
			removed++
		}
	}
	return removed, nil
}

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[int]Transaction{}
	s.nextId = 0
	s.Err = nil
	s.DeleteByCategoryErr = nil
}
