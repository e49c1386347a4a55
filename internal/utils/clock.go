package utils

import (
	"sync"
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant until moved with SetNow.
type MockClock struct {
	mu       sync.RWMutex
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.mu.Lock()
	m.FixedNow = now
	m.mu.Unlock()
}

func CurrentPeriod(c Clock) types.Period {
	return types.PeriodOf(c.Now())
}
