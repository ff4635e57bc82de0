package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarketTrend is the short-term price direction for a crop.
type MarketTrend string

const (
	TrendUp   MarketTrend = "up"
	TrendDown MarketTrend = "down"
	TrendFlat MarketTrend = "flat"
)

// Disease describes a crop disease and how to treat it.
type Disease struct {
	Name      string `bson:"name" json:"name"`
	Symptoms  string `bson:"symptoms" json:"symptoms"`
	Treatment string `bson:"treatment" json:"treatment"`
}

// MarketSnapshot is the last known market price for a crop.
type MarketSnapshot struct {
	PricePerKgUSD float64     `bson:"pricePerKgUsd" json:"pricePerKgUsd"`
	Trend         MarketTrend `bson:"trend" json:"trend"`
	Note          string      `bson:"note" json:"note"`
}

// Crop is agronomic reference data, mostly seeded at startup.
type Crop struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID        *primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name           string              `bson:"name" json:"name"`
	ScientificName string              `bson:"scientificName,omitempty" json:"scientificName,omitempty"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	OptimalTemp    string              `bson:"optimalTemp,omitempty" json:"optimalTemp,omitempty"`
	Soil           string              `bson:"soil,omitempty" json:"soil,omitempty"`
	Water          string              `bson:"water,omitempty" json:"water,omitempty"`
	OptimalSoilPH  []float64           `bson:"optimalSoilPH" json:"optimalSoilPH"`
	CommonPests    []string            `bson:"commonPests" json:"commonPests"`
	Diseases       []Disease           `bson:"diseases" json:"diseases"`
	Tips           []string            `bson:"tips" json:"tips"`
	Market         MarketSnapshot      `bson:"market" json:"market"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CropPatch lists the fields a PATCH may change.
type CropPatch struct {
	Name           *string
	ScientificName *string
	Description    *string
	OptimalTemp    *string
	Soil           *string
	Water          *string
	Tips           *[]string
	Diseases       *[]Disease
	Market         *MarketSnapshot
}
