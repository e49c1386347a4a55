package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/finanzapp/finanzapp/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

var ErrNothingToExport = errors.New("there are no transactions to export")

const (
	ContentType = "text/csv"
	dateLayout  = "02/01/2006"
)

var header = []string{"Date", "Description", "Category", "Type", "Amount"}

type TransactionExporter interface {
	RenderTransactions(transactions []transaction.Transaction) (string, error)
}

type CsvTransactionExporterImpl struct {
}

func NewCsvTransactionExporter() *CsvTransactionExporterImpl {
	return &CsvTransactionExporterImpl{}
}

// RenderTransactions writes one row per transaction in collection order,
// with expenses as negative amounts.
func (e *CsvTransactionExporterImpl) RenderTransactions(transactions []transaction.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", ErrNothingToExport
	}

	data := make([][]string, 0, len(transactions)+1)
	data = append(data, header)
	for _, t := range transactions {
		data = append(data, []string{
			t.Date.Format(dateLayout),
			t.Description,
			t.Category,
			t.EffectiveKind().Label(),
			t.SignedAmount().StringFixed(2),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

// FileName stamps the export with the day it was made.
func FileName(now time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", now.Format("2006-01-02"))
}
