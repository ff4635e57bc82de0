package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// EmployeeService is implemented by service/employee.
type EmployeeService interface {
	List(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Employee, error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Employee, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, e models.Employee) (*models.Employee, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.EmployeePatch) (*models.Employee, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type EmployeeHandler struct {
	svc    EmployeeService
	logger *zap.Logger
}

func NewEmployeeHandler(svc EmployeeService, logger *zap.Logger) *EmployeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeHandler{svc: svc, logger: logger}
}

type createEmployeeRequest struct {
	FullName string                `json:"fullName" binding:"trimmin=2" msg:"Full name is required"`
	Role     string                `json:"role" binding:"trimmin=2" msg:"Role is required"`
	Phone    string                `json:"phone" binding:"trimmin=3" msg:"Phone is required"`
	Status   models.EmployeeStatus `json:"status"`
}

type updateEmployeeRequest struct {
	FullName *string                `json:"fullName"`
	Role     *string                `json:"role"`
	Phone    *string                `json:"phone"`
	Status   *models.EmployeeStatus `json:"status"`
}

func (h *EmployeeHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), owner(c), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := pathID(c, "employee")
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

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), owner(c), models.Employee{
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Status:   req.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := pathID(c, "employee")
	if err != nil {
		fail(c, err)
		return
	}
	var req updateEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), owner(c), id, models.EmployeePatch{
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Status:   req.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "employee")
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
