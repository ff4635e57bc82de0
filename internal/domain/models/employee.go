package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeStatus is the employment state of a farm worker.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeOnLeave  EmployeeStatus = "on_leave"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee is a worker on the owner's farm.
type Employee struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Role      string             `bson:"role" json:"role"`
	Phone     string             `bson:"phone" json:"phone"`
	Status    EmployeeStatus     `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EmployeePatch lists the fields a PATCH may change.
type EmployeePatch struct {
	FullName *string
	Role     *string
	Phone    *string
	Status   *EmployeeStatus
}
