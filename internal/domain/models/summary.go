package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthStatus buckets the composite farmland health score.
type HealthStatus string

const (
	HealthOptimal  HealthStatus = "optimal"
	HealthWatch    HealthStatus = "watch"
	HealthCritical HealthStatus = "critical"
)

// DashboardSummary is the read-time rollup shown on the dashboard.
type DashboardSummary struct {
	Employees      EmployeeRollup `json:"employees"`
	Farmlands      FarmlandRollup `json:"farmlands"`
	FarmlandHealth FarmlandHealth `json:"farmlandHealth"`
	Finances       FinanceRollup  `json:"finances"`
}

type EmployeeRollup struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	OnLeave int `json:"onLeave"`
}

type FarmlandRollup struct {
	Total                int                `json:"total"`
	ScheduledIrrigations int                `json:"scheduledIrrigations"`
	OverdueIrrigation    int                `json:"overdueIrrigation"`
	UpcomingSchedules    []UpcomingSchedule `json:"upcomingSchedules"`
}

// UpcomingSchedule is a farmland with field work due inside the lookahead window.
type UpcomingSchedule struct {
	ID                  primitive.ObjectID `json:"id"`
	Name                string             `json:"name"`
	NextIrrigationDate  *time.Time         `json:"nextIrrigationDate,omitempty"`
	NextFertilizingDate *time.Time         `json:"nextFertilizingDate,omitempty"`
	PlannedPlantingDate *time.Time         `json:"plannedPlantingDate,omitempty"`
}

type FarmlandHealth struct {
	Score  int          `json:"score"`
	Status HealthStatus `json:"status"`
}

type FinanceRollup struct {
	TotalIncome   int64         `json:"totalIncome"`
	TotalExpenses int64         `json:"totalExpenses"`
	Balance       int64         `json:"balance"`
	Recent        []Transaction `json:"recent"`
}

// SummarySnapshot is a point-in-time copy of the headline dashboard numbers,
// written by the nightly job.
type SummarySnapshot struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID           primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	TakenAt           time.Time          `bson:"takenAt" json:"takenAt"`
	Employees         int                `bson:"employees" json:"employees"`
	ActiveEmployees   int                `bson:"activeEmployees" json:"activeEmployees"`
	Farmlands         int                `bson:"farmlands" json:"farmlands"`
	OverdueIrrigation int                `bson:"overdueIrrigation" json:"overdueIrrigation"`
	Score             int                `bson:"score" json:"score"`
	Status            HealthStatus       `bson:"status" json:"status"`
	TotalIncome       int64              `bson:"totalIncome" json:"totalIncome"`
	TotalExpenses     int64              `bson:"totalExpenses" json:"totalExpenses"`
	Balance           int64              `bson:"balance" json:"balance"`
}
