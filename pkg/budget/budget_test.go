package budget

import (
	"testing"
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)

func TestBudget_WithDefaults(t *testing.T) {
	t.Run("should place budget in the current month", func(t *testing.T) {
		b := Budget{Category: "Food"}.WithDefaults(now)

		assert.Equal(t, types.Period{Month: 5, Year: 2025}, b.Period())
		assert.True(t, b.Amount.IsZero())
		assert.Equal(t, now, b.CreatedAt)
	})

	t.Run("should keep an explicit january", func(t *testing.T) {
		b := Budget{Category: "Food", Month: 0, Year: 2024}.WithDefaults(now)

		assert.Equal(t, types.Period{Month: 0, Year: 2024}, b.Period())
	})
}

func TestBudget_Collides(t *testing.T) {
	base := Budget{ID: 1, Category: "Food", Month: 2, Year: 2025}

	tests := []struct {
		name  string
		other Budget
		want  bool
	}{
		{"itself", base, false},
		{"same slot other record", Budget{ID: 2, Category: "Food", Month: 2, Year: 2025}, true},
		{"other month", Budget{ID: 2, Category: "Food", Month: 3, Year: 2025}, false},
		{"other year", Budget{ID: 2, Category: "Food", Month: 2, Year: 2024}, false},
		{"other category", Budget{ID: 2, Category: "Transport", Month: 2, Year: 2025}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Collides(tt.other))
		})
	}
}

func TestSampleBudgets(t *testing.T) {
	samples := SampleBudgets(now)

	assert.Len(t, samples, 2)
	assert.Equal(t, "Food", samples[0].Category)
	assert.True(t, samples[0].Amount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "Transport", samples[1].Category)
	assert.True(t, samples[1].Amount.Equal(decimal.NewFromInt(200)))
}

func TestInPeriod(t *testing.T) {
	budgets := []Budget{
		{ID: 1, Month: 5, Year: 2025},
		{ID: 2, Month: 4, Year: 2025},
		{ID: 3, Month: 5, Year: 2024},
	}

	result := InPeriod(budgets, types.Period{Month: 5, Year: 2025})

	assert.Len(t, result, 1)
	assert.Equal(t, 1, result[0].ID)
}
