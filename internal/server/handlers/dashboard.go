package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

const defaultHistoryLimit = 30

// DashboardService is implemented by service/dashboard.
type DashboardService interface {
	Summary(ctx context.Context, ownerID primitive.ObjectID) (*models.DashboardSummary, error)
	History(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]models.SummarySnapshot, error)
}

type DashboardHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

func NewDashboardHandler(svc DashboardService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Summary is computed on every request.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), owner(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) History(c *gin.Context) {
	items, err := h.svc.History(c.Request.Context(), owner(c), queryLimit(c, defaultHistoryLimit))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
