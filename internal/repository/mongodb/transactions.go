package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// ListTransactions returns matching transactions sorted by date, newest first.
func (s *Store) ListTransactions(ctx context.Context, ownerID primitive.ObjectID, f models.TransactionFilter) ([]models.Transaction, error) {
	filter := transactionFilter(ownerID, f)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	transactions := []models.Transaction{}
	if err := s.find(ctx, transactionsColl, filter, &transactions, opts); err != nil {
		return nil, err
	}
	return transactions, nil
}

func transactionFilter(ownerID primitive.ObjectID, f models.TransactionFilter) bson.M {
	filter := bson.M{"ownerId": ownerID}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.FarmlandID != nil {
		filter["farmlandId"] = *f.FarmlandID
	}
	if f.EmployeeID != nil {
		filter["employeeId"] = *f.EmployeeID
	}
	if f.From != nil || f.To != nil {
		dateRange := bson.M{}
		if f.From != nil {
			dateRange["$gte"] = *f.From
		}
		if f.To != nil {
			dateRange["$lte"] = *f.To
		}
		filter["date"] = dateRange
	}
	return filter
}

func (s *Store) GetTransaction(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Transaction, error) {
	var tx models.Transaction
	found, err := s.findOne(ctx, transactionsColl, ownedBy(ownerID, id), &tx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Transaction")
	}
	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	s.stamp(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	return s.insert(ctx, transactionsColl, tx)
}

func (s *Store) DeleteTransaction(ctx context.Context, ownerID, id primitive.ObjectID) error {
	deleted, err := s.deleteOwned(ctx, transactionsColl, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundError("Transaction")
	}
	return nil
}
