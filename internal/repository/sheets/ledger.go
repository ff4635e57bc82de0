package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/hingaguru/farmdesk/internal/config"
	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// Ranges the ledger appends to. Each tab holds one row per record.
const (
	TransactionsRange = "Transactions!A:J"
	SnapshotsRange    = "Snapshots!A:K"
)

// Ledger mirrors financial activity and nightly summaries into a spreadsheet
// so that owners can inspect them outside the app.
type Ledger interface {
	AppendTransaction(ctx context.Context, tx models.Transaction) error
	AppendSnapshot(ctx context.Context, snapshot models.SummarySnapshot) error
}

// GoogleSheetLedger implements Ledger using the official Google Sheets API.
type GoogleSheetLedger struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetLedger authenticates with a service account credentials file.
func NewGoogleSheetLedger(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetLedger, error) {
	return newLedger(ctx, cfg.SpreadsheetID, logger,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
}

func newLedger(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetLedger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetLedger{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// AppendTransaction writes one ledger row for tx.
func (l *GoogleSheetLedger) AppendTransaction(ctx context.Context, tx models.Transaction) error {
	return l.writeRow(ctx, TransactionsRange, TransactionRow(tx))
}

// AppendSnapshot writes one history row for snapshot.
func (l *GoogleSheetLedger) AppendSnapshot(ctx context.Context, snapshot models.SummarySnapshot) error {
	return l.writeRow(ctx, SnapshotsRange, SnapshotRow(snapshot))
}

func (l *GoogleSheetLedger) writeRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := l.service.Spreadsheets.Values.Append(l.spreadsheetID, sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	l.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

// TransactionRow lays out a transaction as spreadsheet cells.
func TransactionRow(tx models.Transaction) []interface{} {
	return []interface{}{
		tx.Date.UTC().Format(time.DateOnly),
		tx.OwnerID.Hex(),
		tx.ID.Hex(),
		string(tx.Type),
		tx.Category,
		tx.Amount,
		tx.Currency,
		optionalHex(tx.FarmlandID),
		optionalHex(tx.EmployeeID),
		strings.TrimSpace(tx.Note),
	}
}

// SnapshotRow lays out a summary snapshot as spreadsheet cells.
func SnapshotRow(s models.SummarySnapshot) []interface{} {
	return []interface{}{
		s.TakenAt.UTC().Format(time.RFC3339),
		s.OwnerID.Hex(),
		s.Employees,
		s.ActiveEmployees,
		s.Farmlands,
		s.OverdueIrrigation,
		s.Score,
		string(s.Status),
		s.TotalIncome,
		s.TotalExpenses,
		s.Balance,
	}
}

func optionalHex(id *primitive.ObjectID) string {
	if id == nil {
		return ""
	}
	return id.Hex()
}
