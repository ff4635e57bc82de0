package crop

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

// Service serves the shared crop catalogue. Anyone can read it; only the
// owner of a crop may change or remove it.
type Service struct {
	repo   repository.CropRepository
	logger *zap.Logger
}

func NewService(repo repository.CropRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, search string) ([]models.Crop, error) {
	return s.repo.ListCrops(ctx, strings.TrimSpace(search))
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Crop, error) {
	return s.repo.GetCrop(ctx, id)
}

// Create adds a crop owned by ownerID. Diseases missing a name, symptoms or
// treatment are dropped, and an unknown market trend becomes flat.
func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, c models.Crop) (*models.Crop, error) {
	c.ID = primitive.NilObjectID
	c.OwnerID = &ownerID
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, models.ValidationError("Name is required")
	}
	c.ScientificName = strings.TrimSpace(c.ScientificName)
	c.Description = strings.TrimSpace(c.Description)
	c.OptimalTemp = strings.TrimSpace(c.OptimalTemp)
	c.Soil = strings.TrimSpace(c.Soil)
	c.Water = strings.TrimSpace(c.Water)
	c.Tips = models.CleanStrings(c.Tips)
	c.CommonPests = models.CleanStrings(c.CommonPests)
	c.Diseases = cleanDiseases(c.Diseases)
	c.Market = cleanMarket(c.Market)
	if c.OptimalSoilPH == nil {
		c.OptimalSoilPH = []float64{}
	}

	if err := s.repo.CreateCrop(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.CropPatch) (*models.Crop, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, models.ValidationError("Name is required")
		}
		patch.Name = &name
	}
	if patch.Tips != nil {
		tips := models.CleanStrings(*patch.Tips)
		patch.Tips = &tips
	}
	if patch.Diseases != nil {
		diseases := cleanDiseases(*patch.Diseases)
		patch.Diseases = &diseases
	}
	if patch.Market != nil {
		market := cleanMarket(*patch.Market)
		patch.Market = &market
	}
	return s.repo.UpdateCrop(ctx, ownerID, id, patch)
}

func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.repo.DeleteCrop(ctx, ownerID, id)
}

// SeedIfEmpty inserts the reference crops, owned by ownerID, when the
// catalogue has no crops at all. It reports how many crops were inserted.
func (s *Service) SeedIfEmpty(ctx context.Context, ownerID primitive.ObjectID) (int, error) {
	count, err := s.repo.CountCrops(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	crops := ReferenceCrops(ownerID)
	if err := s.repo.CreateCrops(ctx, crops); err != nil {
		return 0, err
	}
	s.logger.Info("crop catalogue seeded", zap.Int("crops", len(crops)))
	return len(crops), nil
}

func cleanDiseases(in []models.Disease) []models.Disease {
	out := make([]models.Disease, 0, len(in))
	for _, d := range in {
		d.Name = strings.TrimSpace(d.Name)
		d.Symptoms = strings.TrimSpace(d.Symptoms)
		d.Treatment = strings.TrimSpace(d.Treatment)
		if d.Name == "" || d.Symptoms == "" || d.Treatment == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}

func cleanMarket(m models.MarketSnapshot) models.MarketSnapshot {
	switch m.Trend {
	case models.TrendUp, models.TrendDown, models.TrendFlat:
	default:
		m.Trend = models.TrendFlat
	}
	if m.PricePerKgUSD < 0 {
		m.PricePerKgUSD = 0
	}
	m.Note = strings.TrimSpace(m.Note)
	return m
}
