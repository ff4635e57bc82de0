package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/config"
	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository/memory"
	"github.com/hingaguru/farmdesk/internal/service/dashboard"
)

type recordingLedger struct {
	mu        sync.Mutex
	snapshots []models.SummarySnapshot
}

func (l *recordingLedger) AppendTransaction(context.Context, models.Transaction) error { return nil }

func (l *recordingLedger) AppendSnapshot(_ context.Context, s models.SummarySnapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots = append(l.snapshots, s)
	return nil
}

type sentMessage struct{ to, body string }

type recordingNotifier struct {
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) SendText(_ context.Context, to, body string) (string, error) {
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, sentMessage{to: to, body: body})
	return "wamid.1", nil
}

var reporting = config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Africa/Kigali"}

func seedUsers(t *testing.T, store *memory.Store) (models.User, models.User) {
	t.Helper()
	ctx := context.Background()
	withPhone := models.User{Name: "Aline", Email: "aline@example.com", PhoneNumber: "+250788000001"}
	noPhone := models.User{Name: "Eric", Email: "eric@example.com"}
	require.NoError(t, store.CreateUser(ctx, &withPhone))
	require.NoError(t, store.CreateUser(ctx, &noPhone))
	require.NoError(t, store.CreateTransaction(ctx, &models.Transaction{
		OwnerID: withPhone.ID, Type: models.TransactionIncome, Amount: 25000, Date: time.Now(), Category: "milk",
	}))
	return withPhone, noPhone
}

func TestRunOnce_SnapshotsMirrorsAndNotifies(t *testing.T) {
	store := memory.NewStore()
	aline, eric := seedUsers(t, store)
	ledger := &recordingLedger{}
	notifier := &recordingNotifier{}

	s, err := NewScheduler(reporting, store, dashboard.NewService(store, nil), ledger, notifier, zap.NewNop())
	require.NoError(t, err)

	taken, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, taken)
	require.Len(t, ledger.snapshots, 2)

	require.Len(t, notifier.sent, 1)
	require.Equal(t, aline.PhoneNumber, notifier.sent[0].to)
	require.Contains(t, notifier.sent[0].body, "Aline")
	require.Contains(t, notifier.sent[0].body, "25,000")

	history, err := store.ListSnapshots(context.Background(), eric.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestRunOnce_DeliveryFailureDoesNotStopRun(t *testing.T) {
	store := memory.NewStore()
	seedUsers(t, store)

	s, err := NewScheduler(reporting, store, dashboard.NewService(store, nil), nil, &recordingNotifier{err: errors.New("401")}, nil)
	require.NoError(t, err)

	taken, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, taken)
}

func TestRunOnce_SkipsDigestForPlaceholderOwner(t *testing.T) {
	store := memory.NewStore()
	aline, _ := seedUsers(t, store)
	owner := models.User{
		Name: "Default Farmer", Email: "farmer@example.com",
		PasswordHash: models.PlaceholderPasswordHash, PhoneNumber: "+250700000000",
	}
	require.NoError(t, store.CreateUser(context.Background(), &owner))
	notifier := &recordingNotifier{}

	s, err := NewScheduler(reporting, store, dashboard.NewService(store, nil), nil, notifier, zap.NewNop())
	require.NoError(t, err)

	taken, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, taken)
	require.Len(t, notifier.sent, 1)
	require.Equal(t, aline.PhoneNumber, notifier.sent[0].to)

	history, err := store.ListSnapshots(context.Background(), owner.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestNewScheduler_RejectsBadSettings(t *testing.T) {
	store := memory.NewStore()
	svc := dashboard.NewService(store, nil)

	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "whenever", Timezone: "UTC"}, store, svc, nil, nil, nil)
	require.Error(t, err)

	_, err = NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Mars/Olympus"}, store, svc, nil, nil, nil)
	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	store := memory.NewStore()
	s, err := NewScheduler(reporting, store, dashboard.NewService(store, nil), nil, nil, nil)
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
