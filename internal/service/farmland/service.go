package farmland

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

// Service manages an owner's farmlands.
type Service struct {
	repo   repository.FarmlandRepository
	logger *zap.Logger
}

func NewService(repo repository.FarmlandRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Farmland, error) {
	return s.repo.ListFarmlands(ctx, ownerID, strings.TrimSpace(search))
}

func (s *Service) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Farmland, error) {
	return s.repo.GetFarmland(ctx, ownerID, id)
}

// Create stores a new farmland for the owner, trimming text fields and
// defaulting the status to active.
func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, f models.Farmland) (*models.Farmland, error) {
	f.ID = primitive.NilObjectID
	f.OwnerID = ownerID
	f.Name = strings.TrimSpace(f.Name)
	f.Area = strings.TrimSpace(f.Area)
	f.Crops = models.CleanStrings(f.Crops)
	if f.Status = strings.TrimSpace(f.Status); f.Status == "" {
		f.Status = models.FarmlandStatusActive
	}
	if f.Name == "" {
		return nil, models.ValidationError("Name is required")
	}

	if err := s.repo.CreateFarmland(ctx, &f); err != nil {
		return nil, err
	}
	s.logger.Info("farmland created", zap.String("id", f.ID.Hex()), zap.String("owner", ownerID.Hex()))
	return &f, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.FarmlandPatch) (*models.Farmland, error) {
	trim(patch.Name)
	trim(patch.Area)
	if patch.Name != nil && *patch.Name == "" {
		return nil, models.ValidationError("Name is required")
	}
	if patch.Crops != nil {
		cleaned := models.CleanStrings(*patch.Crops)
		patch.Crops = &cleaned
	}
	return s.repo.UpdateFarmland(ctx, ownerID, id, patch)
}

func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.repo.DeleteFarmland(ctx, ownerID, id)
}

func trim(v *string) {
	if v != nil {
		*v = strings.TrimSpace(*v)
	}
}
