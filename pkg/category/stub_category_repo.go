package category

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/finanzapp/finanzapp/internal/database"
)

type StubRepository struct {
	mu     sync.Mutex
	nextId int
	data   map[int]Category
	// Err, when set, is returned by every call.
	Err error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]Category{}}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	categories := make([]Category, 0, len(s.data))
	for _, c := range s.data {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *StubRepository) FindByName(ctx context.Context, name string) (Category, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return Category{}, false, s.Err
	}
	for _, c := range s.data {
		if c.Name == name {
			return c, true, nil
		}
	}
	return Category{}, false, nil
}

func (s *StubRepository) Store(ctx context.Context, category Category) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for _, c := range s.data {
		if c.Name == category.Name {
			return 0, fmt.Errorf("store category %q: %w", category.Name, database.ErrDuplicate)
		}
	}
	s.nextId++
	category.ID = s.nextId
	s.data[category.ID] = category
	return category.ID, nil
}

func (s *StubRepository) Update(ctx context.Context, category Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	existing, ok := s.data[category.ID]
	if !ok {
		return false, nil
	}
	category.IsDefault = existing.IsDefault
	category.CreatedAt = existing.CreatedAt
	s.data[category.ID] = category
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

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[int]Category{}
	s.nextId = 0
	s.Err = nil
}
