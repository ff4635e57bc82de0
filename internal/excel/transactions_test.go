package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

func TestWriteTransactions(t *testing.T) {
	farm := primitive.NewObjectID()
	txs := []models.Transaction{
		{Type: models.TransactionIncome, Amount: 90000, Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Category: "sales", Currency: "RWF", FarmlandID: &farm},
		{Type: models.TransactionExpense, Amount: 15000, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Category: "seeds", Currency: "RWF", Note: "hybrid maize"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs, time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SummarySheet, LedgerSheet}, f.GetSheetList())

	rows, err := f.GetRows(LedgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Date", rows[0][0])
	require.GreaterOrEqual(t, len(rows[1]), 6)
	require.Equal(t, []string{"2025-03-02", "income", "sales", "90000", "RWF", farm.Hex()}, rows[1][:6])
	require.Equal(t, "hybrid maize", rows[2][7])

	balance, err := f.GetCellValue(SummarySheet, "B5")
	require.NoError(t, err)
	require.Equal(t, "75000", balance)
}
