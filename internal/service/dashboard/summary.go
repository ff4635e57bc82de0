package dashboard

import (
	"math"
	"time"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

const (
	// RecentTransactionLimit is how many transactions feed the finance rollup.
	RecentTransactionLimit = 10
	upcomingWindowDays     = 7
	healthScoreFloor       = 40
)

// Summarize reduces the owner's records into the dashboard rollup as of now.
// recent must already be the newest transactions, newest first; its totals are
// not all-time totals.
func Summarize(now time.Time, employees []models.Employee, farmlands []models.Farmland, recent []models.Transaction) models.DashboardSummary {
	var summary models.DashboardSummary

	summary.Employees.Total = len(employees)
	for _, e := range employees {
		switch e.Status {
		case models.EmployeeActive:
			summary.Employees.Active++
		case models.EmployeeOnLeave:
			summary.Employees.OnLeave++
		}
	}

	windowEnd := now.AddDate(0, 0, upcomingWindowDays)
	summary.Farmlands.Total = len(farmlands)
	summary.Farmlands.UpcomingSchedules = []models.UpcomingSchedule{}
	for _, f := range farmlands {
		if d := f.NextIrrigationDate; d != nil {
			if d.After(now) {
				summary.Farmlands.ScheduledIrrigations++
			} else if d.Before(now) {
				summary.Farmlands.OverdueIrrigation++
			}
		}
		if within(f.NextIrrigationDate, now, windowEnd) ||
			within(f.NextFertilizingDate, now, windowEnd) ||
			within(f.PlannedPlantingDate, now, windowEnd) {
			summary.Farmlands.UpcomingSchedules = append(summary.Farmlands.UpcomingSchedules, models.UpcomingSchedule{
				ID:                  f.ID,
				Name:                f.Name,
				NextIrrigationDate:  f.NextIrrigationDate,
				NextFertilizingDate: f.NextFertilizingDate,
				PlannedPlantingDate: f.PlannedPlantingDate,
			})
		}
	}

	score := HealthScore(summary.Farmlands.Total, summary.Farmlands.OverdueIrrigation)
	summary.FarmlandHealth = models.FarmlandHealth{Score: score, Status: HealthStatusFor(score)}

	summary.Finances.Recent = []models.Transaction{}
	for _, tx := range recent {
		switch tx.Type {
		case models.TransactionIncome:
			summary.Finances.TotalIncome += tx.Amount
		case models.TransactionExpense:
			summary.Finances.TotalExpenses += tx.Amount
		}
		summary.Finances.Recent = append(summary.Finances.Recent, tx)
	}
	summary.Finances.Balance = summary.Finances.TotalIncome - summary.Finances.TotalExpenses

	return summary
}

// within reports whether d lies in [start, end], bounds included.
func within(d *time.Time, start, end time.Time) bool {
	return d != nil && !d.Before(start) && !d.After(end)
}

// HealthScore is 0 without farmlands, otherwise the share of farmlands not
// overdue for irrigation as a percentage, never below 40.
func HealthScore(total, overdue int) int {
	if total <= 0 {
		return 0
	}
	score := int(math.Round(float64(total-overdue) / float64(total) * 100))
	return max(healthScoreFloor, score)
}

// HealthStatusFor buckets a health score.
func HealthStatusFor(score int) models.HealthStatus {
	switch {
	case score >= 75:
		return models.HealthOptimal
	case score >= 55:
		return models.HealthWatch
	default:
		return models.HealthCritical
	}
}
