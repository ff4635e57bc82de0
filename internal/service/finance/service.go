// Package finance records income and expense transactions and mirrors them
// into the spreadsheet ledger when one is configured.
package finance

import (
	"context"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/excel"
	"github.com/hingaguru/farmdesk/internal/repository"
	"github.com/hingaguru/farmdesk/internal/repository/sheets"
)

// Service manages transactions.
type Service struct {
	repo   repository.TransactionRepository
	ledger sheets.Ledger
	logger *zap.Logger
	now    func() time.Time
}

// NewService builds the finance service. ledger may be nil.
func NewService(repo repository.TransactionRepository, ledger sheets.Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, ledger: ledger, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context, ownerID primitive.ObjectID, filter models.TransactionFilter) ([]models.Transaction, error) {
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))
	return s.repo.ListTransactions(ctx, ownerID, filter)
}

func (s *Service) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Transaction, error) {
	return s.repo.GetTransaction(ctx, ownerID, id)
}

// Create records a transaction. The category is stored lowercase and the
// currency is always RWF.
func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, tx models.Transaction) (*models.Transaction, error) {
	if tx.Type != models.TransactionIncome && tx.Type != models.TransactionExpense {
		return nil, models.ValidationError("Type must be income or expense")
	}
	if tx.Amount <= 0 {
		return nil, models.ValidationError("Amount must be a positive number")
	}
	if tx.Amount > models.MaxAmount {
		return nil, models.ValidationError("Amount must not exceed 9007199254740991")
	}
	if tx.Date.IsZero() {
		return nil, models.ValidationError("Date is required")
	}
	tx.Category = strings.ToLower(strings.TrimSpace(tx.Category))
	if tx.Category == "" {
		return nil, models.ValidationError("Category is required")
	}

	tx.ID = primitive.NilObjectID
	tx.OwnerID = ownerID
	tx.Note = strings.TrimSpace(tx.Note)
	tx.Currency = models.DefaultCurrency

	if err := s.repo.CreateTransaction(ctx, &tx); err != nil {
		return nil, err
	}

	if s.ledger != nil {
		if err := s.ledger.AppendTransaction(ctx, tx); err != nil {
			s.logger.Warn("ledger mirror failed", zap.String("transaction", tx.ID.Hex()), zap.Error(err))
		}
	}
	return &tx, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.repo.DeleteTransaction(ctx, ownerID, id)
}

// Export writes every transaction matching filter as an xlsx workbook.
func (s *Service) Export(ctx context.Context, ownerID primitive.ObjectID, filter models.TransactionFilter, w io.Writer) error {
	filter.Limit = 0
	txs, err := s.List(ctx, ownerID, filter)
	if err != nil {
		return err
	}
	return excel.WriteTransactions(w, txs, s.now())
}
