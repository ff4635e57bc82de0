package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// SaveSnapshot stores a dashboard snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot *models.SummarySnapshot) error {
	if snapshot.ID.IsZero() {
		snapshot.ID = primitive.NewObjectID()
	}
	if snapshot.TakenAt.IsZero() {
		snapshot.TakenAt = s.now()
	}
	return s.insert(ctx, snapshotsColl, snapshot)
}

// ListSnapshots returns the owner's most recent snapshots first.
func (s *Store) ListSnapshots(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]models.SummarySnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "takenAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	snapshots := []models.SummarySnapshot{}
	if err := s.find(ctx, snapshotsColl, bson.M{"ownerId": ownerID}, &snapshots, opts); err != nil {
		return nil, err
	}
	return snapshots, nil
}
