package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FarmlandStatusActive is assigned when a farmland is created without a status.
const FarmlandStatusActive = "active"

// Farmland is a plot of land managed by an owner, with its upcoming field work dates.
type Farmland struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID             primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name                string             `bson:"name" json:"name"`
	Area                string             `bson:"area,omitempty" json:"area,omitempty"`
	Crops               []string           `bson:"crops" json:"crops"`
	NextIrrigationDate  *time.Time         `bson:"nextIrrigationDate,omitempty" json:"nextIrrigationDate,omitempty"`
	NextFertilizingDate *time.Time         `bson:"nextFertilizingDate,omitempty" json:"nextFertilizingDate,omitempty"`
	PlannedPlantingDate *time.Time         `bson:"plannedPlantingDate,omitempty" json:"plannedPlantingDate,omitempty"`
	Status              string             `bson:"status" json:"status"`
	ImageURL            string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	FarmID              string             `bson:"farmId,omitempty" json:"farmId,omitempty"`
	PlotID              string             `bson:"plotId,omitempty" json:"plotId,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FarmlandPatch lists the fields a PATCH may change. Nil pointers are left untouched.
type FarmlandPatch struct {
	Name                *string
	Area                *string
	Crops               *[]string
	Status              *string
	ImageURL            *string
	NextIrrigationDate  DatePatch
	NextFertilizingDate DatePatch
	PlannedPlantingDate DatePatch
}
