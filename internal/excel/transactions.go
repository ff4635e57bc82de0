// Package excel renders transaction exports as xlsx workbooks.
package excel

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

const (
	SummarySheet = "Summary"
	LedgerSheet  = "Transactions"
)

var ledgerHeader = []any{"Date", "Type", "Category", "Amount", "Currency", "Farmland", "Employee", "Note"}

// WriteTransactions writes a two-sheet workbook to w: a summary of totals and
// the full ledger, one row per transaction in the order given.
func WriteTransactions(w io.Writer, txs []models.Transaction, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(LedgerSheet); err != nil {
		return fmt.Errorf("create ledger sheet: %w", err)
	}

	if err := writeLedger(f, txs); err != nil {
		return err
	}
	if err := writeSummary(f, txs, generatedAt); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeLedger(f *excelize.File, txs []models.Transaction) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetSheetRow(LedgerSheet, "A1", &ledgerHeader); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	if err := f.SetRowStyle(LedgerSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style ledger header: %w", err)
	}

	for i, tx := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			tx.Date.UTC().Format(time.DateOnly),
			string(tx.Type),
			tx.Category,
			tx.Amount,
			tx.Currency,
			hexOrEmpty(tx.FarmlandID),
			hexOrEmpty(tx.EmployeeID),
			tx.Note,
		}
		if err := f.SetSheetRow(LedgerSheet, cell, &row); err != nil {
			return fmt.Errorf("write ledger row %d: %w", i+2, err)
		}
	}
	return f.SetColWidth(LedgerSheet, "A", "H", 16)
}

func writeSummary(f *excelize.File, txs []models.Transaction, generatedAt time.Time) error {
	var income, expenses int64
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			income += tx.Amount
		case models.TransactionExpense:
			expenses += tx.Amount
		}
	}

	rows := [][]any{
		{"Generated", generatedAt.UTC().Format(time.RFC3339)},
		{"Transactions", len(txs)},
		{"Total income", income},
		{"Total expenses", expenses},
		{"Balance", income - expenses},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 20)
}

func hexOrEmpty(id *primitive.ObjectID) string {
	if id == nil {
		return ""
	}
	return id.Hex()
}
