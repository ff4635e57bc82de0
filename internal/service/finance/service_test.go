package finance

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository/memory"
)

type fakeLedger struct {
	rows []models.Transaction
	err  error
}

func (l *fakeLedger) AppendTransaction(_ context.Context, tx models.Transaction) error {
	l.rows = append(l.rows, tx)
	return l.err
}

func (l *fakeLedger) AppendSnapshot(context.Context, models.SummarySnapshot) error { return nil }

func TestService_CreateNormalizesAndMirrors(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewService(memory.NewStore(), ledger, nil)
	owner := primitive.NewObjectID()

	tx, err := svc.Create(context.Background(), owner, models.Transaction{
		Type:     models.TransactionExpense,
		Amount:   2500,
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Category: "  Fertilizer ",
		Currency: "USD",
	})
	require.NoError(t, err)
	require.Equal(t, "fertilizer", tx.Category)
	require.Equal(t, "RWF", tx.Currency)
	require.Equal(t, owner, tx.OwnerID)
	require.Len(t, ledger.rows, 1)
	require.Equal(t, tx.ID, ledger.rows[0].ID)
}

func TestService_LedgerFailureDoesNotFailCreate(t *testing.T) {
	svc := NewService(memory.NewStore(), &fakeLedger{err: errors.New("quota exceeded")}, nil)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), models.Transaction{
		Type: models.TransactionIncome, Amount: 1, Date: time.Now(), Category: "sales",
	})
	require.NoError(t, err)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(memory.NewStore(), nil, nil)
	owner := primitive.NewObjectID()
	valid := models.Transaction{Type: models.TransactionIncome, Amount: 10, Date: time.Now(), Category: "sales"}

	cases := map[string]func(tx *models.Transaction){
		"Type must be income or expense":          func(tx *models.Transaction) { tx.Type = "gift" },
		"Amount must be a positive number":        func(tx *models.Transaction) { tx.Amount = 0 },
		"Amount must not exceed 9007199254740991": func(tx *models.Transaction) { tx.Amount = models.MaxAmount + 1 },
		"Date is required":                        func(tx *models.Transaction) { tx.Date = time.Time{} },
		"Category is required":                    func(tx *models.Transaction) { tx.Category = "  " },
	}
	for message, mutate := range cases {
		tx := valid
		mutate(&tx)
		_, err := svc.Create(context.Background(), owner, tx)
		require.ErrorIs(t, err, models.ErrValidation, message)
		require.EqualError(t, err, message)
	}
}

func TestService_ExportWritesWorkbook(t *testing.T) {
	svc := NewService(memory.NewStore(), nil, nil)
	owner := primitive.NewObjectID()
	_, err := svc.Create(context.Background(), owner, models.Transaction{
		Type: models.TransactionIncome, Amount: 10, Date: time.Now(), Category: "sales",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), owner, models.TransactionFilter{}, &buf))
	// xlsx files are zip archives
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}
