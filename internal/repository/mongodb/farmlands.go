package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// ListFarmlands returns the owner's farmlands, newest first, optionally
// matching search against name, area and crop names.
func (s *Store) ListFarmlands(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Farmland, error) {
	filter := bson.M{"ownerId": ownerID}
	if search != "" {
		filter["$or"] = searchAny(search, "name", "area", "crops")
	}

	farmlands := []models.Farmland{}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := s.find(ctx, farmlandsColl, filter, &farmlands, opts); err != nil {
		return nil, err
	}
	return farmlands, nil
}

func (s *Store) GetFarmland(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Farmland, error) {
	var farmland models.Farmland
	found, err := s.findOne(ctx, farmlandsColl, ownedBy(ownerID, id), &farmland)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Farmland")
	}
	return &farmland, nil
}

func (s *Store) CreateFarmland(ctx context.Context, farmland *models.Farmland) error {
	s.stamp(&farmland.ID, &farmland.CreatedAt, &farmland.UpdatedAt)
	return s.insert(ctx, farmlandsColl, farmland)
}

func (s *Store) UpdateFarmland(ctx context.Context, ownerID, id primitive.ObjectID, patch models.FarmlandPatch) (*models.Farmland, error) {
	set, unset := bson.M{}, bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Area != nil {
		set["area"] = *patch.Area
	}
	if patch.Crops != nil {
		set["crops"] = *patch.Crops
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	applyDate(set, unset, "nextIrrigationDate", patch.NextIrrigationDate)
	applyDate(set, unset, "nextFertilizingDate", patch.NextFertilizingDate)
	applyDate(set, unset, "plannedPlantingDate", patch.PlannedPlantingDate)

	var farmland models.Farmland
	found, err := s.update(ctx, farmlandsColl, ownedBy(ownerID, id), set, unset, &farmland)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Farmland")
	}
	return &farmland, nil
}

func (s *Store) DeleteFarmland(ctx context.Context, ownerID, id primitive.ObjectID) error {
	deleted, err := s.deleteOwned(ctx, farmlandsColl, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundError("Farmland")
	}
	return nil
}

func applyDate(set, unset bson.M, field string, patch models.DatePatch) {
	if !patch.Set {
		return
	}
	if patch.Value == nil {
		unset[field] = ""
		return
	}
	set[field] = *patch.Value
}
