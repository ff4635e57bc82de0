// Package dashboard computes the owner's dashboard rollup at read time and
// keeps a history of point-in-time snapshots of it.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

// Repository is the slice of the store the dashboard reads from.
type Repository interface {
	repository.EmployeeRepository
	repository.FarmlandRepository
	repository.TransactionRepository
	repository.SnapshotRepository
}

// Service builds dashboard summaries.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock replaces the evaluation clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Summary loads employees, farmlands and the most recent transactions
// concurrently and reduces them. Any failed read fails the whole summary.
func (s *Service) Summary(ctx context.Context, ownerID primitive.ObjectID) (*models.DashboardSummary, error) {
	var (
		employees []models.Employee
		farmlands []models.Farmland
		recent    []models.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.repo.ListEmployees(gctx, ownerID, "")
		if err != nil {
			return fmt.Errorf("load employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		farmlands, err = s.repo.ListFarmlands(gctx, ownerID, "")
		if err != nil {
			return fmt.Errorf("load farmlands: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = s.repo.ListTransactions(gctx, ownerID, models.TransactionFilter{Limit: RecentTransactionLimit})
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard summary failed", zap.String("owner", ownerID.Hex()), zap.Error(err))
		return nil, err
	}

	summary := Summarize(s.now(), employees, farmlands, recent)
	return &summary, nil
}

// Snapshot computes the current summary and stores its headline numbers.
func (s *Service) Snapshot(ctx context.Context, ownerID primitive.ObjectID) (*models.SummarySnapshot, error) {
	summary, err := s.Summary(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snapshot := SnapshotOf(ownerID, s.now().UTC(), *summary)
	if err := s.repo.SaveSnapshot(ctx, &snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return &snapshot, nil
}

// History returns stored snapshots, newest first.
func (s *Service) History(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]models.SummarySnapshot, error) {
	return s.repo.ListSnapshots(ctx, ownerID, limit)
}

// SnapshotOf copies the headline numbers out of a summary.
func SnapshotOf(ownerID primitive.ObjectID, takenAt time.Time, summary models.DashboardSummary) models.SummarySnapshot {
	return models.SummarySnapshot{
		OwnerID:           ownerID,
		TakenAt:           takenAt,
		Employees:         summary.Employees.Total,
		ActiveEmployees:   summary.Employees.Active,
		Farmlands:         summary.Farmlands.Total,
		OverdueIrrigation: summary.Farmlands.OverdueIrrigation,
		Score:             summary.FarmlandHealth.Score,
		Status:            summary.FarmlandHealth.Status,
		TotalIncome:       summary.Finances.TotalIncome,
		TotalExpenses:     summary.Finances.TotalExpenses,
		Balance:           summary.Finances.Balance,
	}
}

// Digest renders a snapshot as a short plain-text message.
func Digest(name string, s models.SummarySnapshot) string {
	var b strings.Builder
	if name = strings.TrimSpace(name); name == "" {
		name = "farmer"
	}
	fmt.Fprintf(&b, "Hello %s, here is your farm summary for %s.\n", name, s.TakenAt.Format("Mon 2 Jan 2006"))
	fmt.Fprintf(&b, "Farmland health: %d (%s)", s.Score, s.Status)
	if s.OverdueIrrigation > 0 {
		fmt.Fprintf(&b, ", %d overdue irrigation(s)", s.OverdueIrrigation)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Team: %d active of %d\n", s.ActiveEmployees, s.Employees)
	fmt.Fprintf(&b, "Recent income: %s RWF, expenses: %s RWF, balance: %s RWF",
		formatAmount(s.TotalIncome), formatAmount(s.TotalExpenses), formatAmount(s.Balance))
	return b.String()
}

// formatAmount groups thousands with commas.
func formatAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
