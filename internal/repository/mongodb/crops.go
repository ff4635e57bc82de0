package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// ListCrops returns every crop sorted by name, optionally matching search
// against name, scientific name, disease names and tips.
func (s *Store) ListCrops(ctx context.Context, search string) ([]models.Crop, error) {
	filter := bson.M{}
	if search != "" {
		filter["$or"] = searchAny(search, "name", "scientificName", "diseases.name", "tips")
	}

	crops := []models.Crop{}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if err := s.find(ctx, cropsColl, filter, &crops, opts); err != nil {
		return nil, err
	}
	return crops, nil
}

func (s *Store) GetCrop(ctx context.Context, id primitive.ObjectID) (*models.Crop, error) {
	var crop models.Crop
	found, err := s.findOne(ctx, cropsColl, bson.M{"_id": id}, &crop)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Crop")
	}
	return &crop, nil
}

func (s *Store) CountCrops(ctx context.Context) (int64, error) {
	count, err := s.db.Collection(cropsColl).EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count crops: %w", err)
	}
	return count, nil
}

func (s *Store) CreateCrop(ctx context.Context, crop *models.Crop) error {
	s.stamp(&crop.ID, &crop.CreatedAt, &crop.UpdatedAt)
	return s.insert(ctx, cropsColl, crop)
}

func (s *Store) CreateCrops(ctx context.Context, crops []models.Crop) error {
	if len(crops) == 0 {
		return nil
	}
	docs := make([]any, 0, len(crops))
	for i := range crops {
		s.stamp(&crops[i].ID, &crops[i].CreatedAt, &crops[i].UpdatedAt)
		docs = append(docs, crops[i])
	}
	if _, err := s.db.Collection(cropsColl).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert crops: %w", err)
	}
	return nil
}

func (s *Store) UpdateCrop(ctx context.Context, ownerID, id primitive.ObjectID, patch models.CropPatch) (*models.Crop, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ScientificName != nil {
		set["scientificName"] = *patch.ScientificName
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.OptimalTemp != nil {
		set["optimalTemp"] = *patch.OptimalTemp
	}
	if patch.Soil != nil {
		set["soil"] = *patch.Soil
	}
	if patch.Water != nil {
		set["water"] = *patch.Water
	}
	if patch.Tips != nil {
		set["tips"] = *patch.Tips
	}
	if patch.Diseases != nil {
		set["diseases"] = *patch.Diseases
	}
	if patch.Market != nil {
		set["market"] = *patch.Market
	}

	var crop models.Crop
	found, err := s.update(ctx, cropsColl, ownedBy(ownerID, id), set, nil, &crop)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Crop")
	}
	return &crop, nil
}

func (s *Store) DeleteCrop(ctx context.Context, ownerID, id primitive.ObjectID) error {
	deleted, err := s.deleteOwned(ctx, cropsColl, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundError("Crop")
	}
	return nil
}
