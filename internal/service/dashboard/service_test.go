package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository/memory"
)

func TestService_SummaryUsesTenMostRecentTransactions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := primitive.NewObjectID()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// amounts 1..15; the newest ten are 6..15
	for i := 1; i <= 15; i++ {
		require.NoError(t, store.CreateTransaction(ctx, &models.Transaction{
			OwnerID: owner, Type: models.TransactionIncome, Amount: int64(i), Date: base.AddDate(0, 0, i), Category: "sales",
		}))
	}
	require.NoError(t, store.CreateTransaction(ctx, &models.Transaction{
		OwnerID: primitive.NewObjectID(), Type: models.TransactionIncome, Amount: 1000, Date: base.AddDate(1, 0, 0),
	}))

	svc := NewService(store, zap.NewNop()).WithClock(func() time.Time { return base.AddDate(0, 1, 0) })
	summary, err := svc.Summary(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, int64(105), summary.Finances.TotalIncome)
	require.Len(t, summary.Finances.Recent, 10)
	require.Equal(t, int64(15), summary.Finances.Recent[0].Amount)
}

type failingRepo struct {
	*memory.Store
}

func (failingRepo) ListFarmlands(context.Context, primitive.ObjectID, string) ([]models.Farmland, error) {
	return nil, errors.New("connection reset")
}

func TestService_SummaryFailsWhenAnyReadFails(t *testing.T) {
	svc := NewService(failingRepo{memory.NewStore()}, nil)

	summary, err := svc.Summary(context.Background(), primitive.NewObjectID())
	require.Nil(t, summary)
	require.ErrorContains(t, err, "load farmlands")
}

func TestService_SnapshotAndHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := primitive.NewObjectID()
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)

	require.NoError(t, store.CreateFarmland(ctx, &models.Farmland{OwnerID: owner, Name: "A", NextIrrigationDate: &past}))
	require.NoError(t, store.CreateFarmland(ctx, &models.Farmland{OwnerID: owner, Name: "B"}))

	clock := now
	svc := NewService(store, nil).WithClock(func() time.Time { return clock })

	first, err := svc.Snapshot(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 2, first.Farmlands)
	require.Equal(t, 1, first.OverdueIrrigation)
	require.Equal(t, 50, first.Score)
	require.Equal(t, models.HealthCritical, first.Status)

	clock = now.Add(24 * time.Hour)
	_, err = svc.Snapshot(ctx, owner)
	require.NoError(t, err)

	history, err := svc.History(ctx, owner, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.True(t, history[0].TakenAt.Equal(clock))
}
