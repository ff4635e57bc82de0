package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// DefaultCurrency tags every transaction; amounts are whole Rwandan francs.
const DefaultCurrency = "RWF"

// MaxAmount is the largest accepted amount (2^53-1). Sums of the recent
// transactions shown on the dashboard stay far below the int64 range.
const MaxAmount int64 = 1<<53 - 1

// Transaction is an immutable ledger entry. Amount is in the smallest currency unit.
type Transaction struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID  `bson:"ownerId" json:"ownerId"`
	Type       TransactionType     `bson:"type" json:"type"`
	Amount     int64               `bson:"amountRwf" json:"amountRwf"`
	Date       time.Time           `bson:"date" json:"date"`
	Category   string              `bson:"category" json:"category"`
	Note       string              `bson:"note,omitempty" json:"note,omitempty"`
	FarmlandID *primitive.ObjectID `bson:"farmlandId,omitempty" json:"farmlandId,omitempty"`
	EmployeeID *primitive.ObjectID `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	Currency   string              `bson:"currency" json:"currency"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// TransactionFilter narrows a transaction listing. Results are always sorted by
// date, newest first. A zero Limit means no limit.
type TransactionFilter struct {
	Type       TransactionType
	Category   string
	FarmlandID *primitive.ObjectID
	EmployeeID *primitive.ObjectID
	From       *time.Time
	To         *time.Time
	Limit      int64
}
