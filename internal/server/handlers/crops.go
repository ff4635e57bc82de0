package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// CropService is implemented by service/crop.
type CropService interface {
	List(ctx context.Context, search string) ([]models.Crop, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Crop, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, c models.Crop) (*models.Crop, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.CropPatch) (*models.Crop, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type CropHandler struct {
	svc    CropService
	logger *zap.Logger
}

func NewCropHandler(svc CropService, logger *zap.Logger) *CropHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CropHandler{svc: svc, logger: logger}
}

type cropRequest struct {
	Name           string                 `json:"name" binding:"trimmin=1" msg:"Name is required"`
	ScientificName string                 `json:"scientificName"`
	Description    string                 `json:"description"`
	OptimalTemp    string                 `json:"optimalTemp"`
	Soil           string                 `json:"soil"`
	Water          string                 `json:"water"`
	OptimalSoilPH  []float64              `json:"optimalSoilPH" binding:"omitempty,len=2" msg:"optimalSoilPH must be [min, max]"`
	CommonPests    models.StringList      `json:"commonPests"`
	Diseases       []models.Disease       `json:"diseases"`
	Tips           models.StringList      `json:"tips"`
	Market         *models.MarketSnapshot `json:"market"`
}

type updateCropRequest struct {
	Name           *string                `json:"name"`
	ScientificName *string                `json:"scientificName"`
	Description    *string                `json:"description"`
	OptimalTemp    *string                `json:"optimalTemp"`
	Soil           *string                `json:"soil"`
	Water          *string                `json:"water"`
	Tips           *models.StringList     `json:"tips"`
	Diseases       *[]models.Disease      `json:"diseases"`
	Market         *models.MarketSnapshot `json:"market"`
}

func (h *CropHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CropHandler) Get(c *gin.Context) {
	id, err := pathID(c, "crop")
	if err != nil {
		fail(c, err)
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CropHandler) Create(c *gin.Context) {
	var req cropRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	crop := models.Crop{
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Description:    req.Description,
		OptimalTemp:    req.OptimalTemp,
		Soil:           req.Soil,
		Water:          req.Water,
		OptimalSoilPH:  req.OptimalSoilPH,
		CommonPests:    req.CommonPests,
		Diseases:       req.Diseases,
		Tips:           req.Tips,
	}
	if req.Market != nil {
		crop.Market = *req.Market
	}

	created, err := h.svc.Create(c.Request.Context(), owner(c), crop)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update changes a crop the caller owns. Seeded crops belong to the default
// owner.
func (h *CropHandler) Update(c *gin.Context) {
	id, err := pathID(c, "crop")
	if err != nil {
		fail(c, err)
		return
	}
	var req updateCropRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	patch := models.CropPatch{
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Description:    req.Description,
		OptimalTemp:    req.OptimalTemp,
		Soil:           req.Soil,
		Water:          req.Water,
		Diseases:       req.Diseases,
		Market:         req.Market,
	}
	if req.Tips != nil {
		tips := []string(*req.Tips)
		patch.Tips = &tips
	}

	updated, err := h.svc.Update(c.Request.Context(), owner(c), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CropHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "crop")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner(c), id); err != nil {
		fail(c, err)
		return
	}
	deleted(c, id)
}
