package export

import (
	"testing"
	"time"

	"github.com/finanzapp/finanzapp/internal/types"
	"github.com/finanzapp/finanzapp/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvTransactionExporterImpl_RenderTransactions(t1 *testing.T) {
	tests := []struct {
		name         string
		transactions []transaction.Transaction
		want         string
		wantErr      error
	}{
		{
			name: "RenderTransactions with income and expense",
			transactions: []transaction.Transaction{
				{
					Kind:        transaction.Income,
					Amount:      decimal.RequireFromString("2850"),
					Date:        types.NewDate(2025, time.March, 1),
					Category:    "Salary",
					Description: "Monthly salary",
				},
				{
					Kind:        transaction.Expense,
					Amount:      decimal.RequireFromString("450.5"),
					Date:        types.NewDate(2025, time.February, 27),
					Category:    "Food",
					Description: "Groceries, weekly",
				},
			},
			want: "Date,Description,Category,Type,Amount\n" +
				"01/03/2025,Monthly salary,Salary,Income,2850.00\n" +
				"27/02/2025,\"Groceries, weekly\",Food,Expense,-450.50\n",
		},
		{
			name:         "RenderTransactions with no transactions",
			transactions: nil,
			wantErr:      ErrNothingToExport,
		},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t *testing.T) {
			e := NewCsvTransactionExporter()

			got, err := e.RenderTransactions(tt.transactions)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "transactions_2025-03-09.csv", FileName(time.Date(2025, time.March, 9, 23, 0, 0, 0, time.UTC)))
}
