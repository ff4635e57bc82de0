package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// FarmlandService is implemented by service/farmland.
type FarmlandService interface {
	List(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Farmland, error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Farmland, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, f models.Farmland) (*models.Farmland, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.FarmlandPatch) (*models.Farmland, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type FarmlandHandler struct {
	svc    FarmlandService
	logger *zap.Logger
}

func NewFarmlandHandler(svc FarmlandService, logger *zap.Logger) *FarmlandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmlandHandler{svc: svc, logger: logger}
}

type createFarmlandRequest struct {
	Name                string            `json:"name" binding:"trimmin=2" msg:"Name is required"`
	Area                string            `json:"area"`
	Crops               models.StringList `json:"crops"`
	NextIrrigationDate  models.FlexDate   `json:"nextIrrigationDate"`
	NextFertilizingDate models.FlexDate   `json:"nextFertilizingDate"`
	PlannedPlantingDate models.FlexDate   `json:"plannedPlantingDate"`
	Status              string            `json:"status"`
	ImageURL            string            `json:"imageUrl"`
	FarmID              string            `json:"farmId"`
	PlotID              string            `json:"plotId"`
}

type updateFarmlandRequest struct {
	Name                *string            `json:"name" binding:"omitempty,trimmin=2" msg:"Name is required"`
	Area                *string            `json:"area"`
	Crops               *models.StringList `json:"crops"`
	Status              *string            `json:"status"`
	ImageURL            *string            `json:"imageUrl"`
	NextIrrigationDate  models.DatePatch   `json:"nextIrrigationDate"`
	NextFertilizingDate models.DatePatch   `json:"nextFertilizingDate"`
	PlannedPlantingDate models.DatePatch   `json:"plannedPlantingDate"`
}

func (h *FarmlandHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), owner(c), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *FarmlandHandler) Get(c *gin.Context) {
	id, err := pathID(c, "farmland")
	if err != nil {
		fail(c, err)
		return
	}
	item, err := h.svc.Get(c.Request.Context(), owner(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *FarmlandHandler) Create(c *gin.Context) {
	var req createFarmlandRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), owner(c), models.Farmland{
		Name:                req.Name,
		Area:                req.Area,
		Crops:               req.Crops,
		NextIrrigationDate:  req.NextIrrigationDate.Time,
		NextFertilizingDate: req.NextFertilizingDate.Time,
		PlannedPlantingDate: req.PlannedPlantingDate.Time,
		Status:              req.Status,
		ImageURL:            req.ImageURL,
		FarmID:              req.FarmID,
		PlotID:              req.PlotID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FarmlandHandler) Update(c *gin.Context) {
	id, err := pathID(c, "farmland")
	if err != nil {
		fail(c, err)
		return
	}
	var req updateFarmlandRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	patch := models.FarmlandPatch{
		Name:                req.Name,
		Area:                req.Area,
		Status:              req.Status,
		ImageURL:            req.ImageURL,
		NextIrrigationDate:  req.NextIrrigationDate,
		NextFertilizingDate: req.NextFertilizingDate,
		PlannedPlantingDate: req.PlannedPlantingDate,
	}
	if req.Crops != nil {
		crops := []string(*req.Crops)
		patch.Crops = &crops
	}

	updated, err := h.svc.Update(c.Request.Context(), owner(c), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *FarmlandHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "farmland")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner(c), id); err != nil {
		fail(c, err)
		return
	}
	h.logger.Info("farmland deleted", zap.String("id", id.Hex()))
	deleted(c, id)
}
