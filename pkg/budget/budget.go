package budget

import (
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/shopspring/decimal"
)

// Budget is a spending limit for one category in one month.
// (Category, Month, Year) is unique.
type Budget struct {
	ID       int
	Category string
	Amount   decimal.Decimal
	// Month is zero-based.
	Month     int
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithDefaults puts a budget without a year into the current month.
// Amount stays at its zero value. Nothing is validated here.
func (b Budget) WithDefaults(now time.Time) Budget {
	if b.Year == 0 {
		p := types.PeriodOf(now)
		b.Month = p.Month
		b.Year = p.Year
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
	return b
}

func (b Budget) Period() types.Period {
	return types.Period{Month: b.Month, Year: b.Year}
}

func (b Budget) InPeriod(p types.Period) bool {
	return p.Matches(b.Month, b.Year)
}

// Collides reports whether other occupies the same (category, month, year)
// slot as b while being a different record.
func (b Budget) Collides(other Budget) bool {
	return b.ID != other.ID && b.Category == other.Category && b.Month == other.Month && b.Year == other.Year
}

func SampleBudgets(now time.Time) []Budget {
	return []Budget{
		Budget{Category: "Food", Amount: decimal.NewFromInt(600)}.WithDefaults(now),
		Budget{Category: "Transport", Amount: decimal.NewFromInt(200)}.WithDefaults(now),
	}
}

func InPeriod(budgets []Budget, p types.Period) []Budget {
	result := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.InPeriod(p) {
			result = append(result, b)
		}
	}
	return result
}
