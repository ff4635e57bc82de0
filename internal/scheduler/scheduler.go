package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/config"
	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository/sheets"
	"github.com/hingaguru/farmdesk/internal/service/dashboard"
	"github.com/hingaguru/farmdesk/pkg/clients/whatsapp"
)

const runTimeout = 5 * time.Minute

// UserLister lists every account the digest is built for.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Snapshotter persists a point-in-time dashboard summary.
type Snapshotter interface {
	Snapshot(ctx context.Context, ownerID primitive.ObjectID) (*models.SummarySnapshot, error)
}

// Scheduler runs the daily digest job.
type Scheduler struct {
	cron     *cron.Cron
	users    UserLister
	snapshot Snapshotter
	ledger   sheets.Ledger
	notifier whatsapp.Client
	logger   *zap.Logger
}

// NewScheduler registers the digest job. ledger and notifier may be nil, in
// which case that step is skipped.
func NewScheduler(cfg config.ReportingConfig, users UserLister, snapshot Snapshotter, ledger sheets.Ledger, notifier whatsapp.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		users:    users,
		snapshot: snapshot,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(cfg.CronSchedule, s.runScheduled); err != nil {
		return nil, fmt.Errorf("schedule digest %q: %w", cfg.CronSchedule, err)
	}
	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("daily digest failed", zap.Error(err))
	}
}

// RunOnce snapshots every account, mirrors the snapshot to the ledger and
// sends the digest to the phone of every registered account. A failure for one account does
// not stop the others. It returns the number of snapshots taken.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	taken := 0
	for _, user := range users {
		log := s.logger.With(zap.String("user", user.ID.Hex()))

		snap, err := s.snapshot.Snapshot(ctx, user.ID)
		if err != nil {
			log.Error("snapshot failed", zap.Error(err))
			continue
		}
		taken++

		if s.ledger != nil {
			if err := s.ledger.AppendSnapshot(ctx, *snap); err != nil {
				log.Warn("ledger append failed", zap.Error(err))
			}
		}

		// The seeded default owner carries a placeholder phone number.
		if s.notifier == nil || user.PhoneNumber == "" || user.Placeholder() {
			continue
		}
		if _, err := s.notifier.SendText(ctx, user.PhoneNumber, dashboard.Digest(user.Name, *snap)); err != nil {
			log.Warn("digest delivery failed", zap.Error(err))
			continue
		}
		log.Info("digest sent")
	}

	s.logger.Info("daily digest complete", zap.Int("users", len(users)), zap.Int("snapshots", taken))
	return taken, nil
}
