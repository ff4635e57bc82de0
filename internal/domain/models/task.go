package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskPriority orders tasks on the planner.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatus tracks completion.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Task is a to-do item, optionally attached to a farmland.
type Task struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID  `bson:"ownerId" json:"ownerId"`
	Title      string              `bson:"title" json:"title"`
	Note       string              `bson:"note" json:"note"`
	DueDate    *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Priority   TaskPriority        `bson:"priority" json:"priority"`
	Status     TaskStatus          `bson:"status" json:"status"`
	FarmlandID *primitive.ObjectID `bson:"farmlandId,omitempty" json:"farmlandId,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// TaskPatch lists the fields a PATCH may change.
type TaskPatch struct {
	Title    *string
	Note     *string
	DueDate  DatePatch
	Priority *TaskPriority
	Status   *TaskStatus
}
