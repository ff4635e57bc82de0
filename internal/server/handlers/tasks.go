package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// TaskService is implemented by service/task.
type TaskService interface {
	List(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Task, error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Task, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, t models.Task) (*models.Task, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type TaskHandler struct {
	svc    TaskService
	logger *zap.Logger
}

func NewTaskHandler(svc TaskService, logger *zap.Logger) *TaskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskHandler{svc: svc, logger: logger}
}

type createTaskRequest struct {
	Title      string              `json:"title" binding:"trimmin=1" msg:"Title is required"`
	Note       string              `json:"note"`
	DueDate    models.FlexDate     `json:"dueDate"`
	Priority   models.TaskPriority `json:"priority"`
	FarmlandID string              `json:"farmlandId"`
}

// Unknown priority or status values are ignored by the service.
type updateTaskRequest struct {
	Title    *string              `json:"title"`
	Note     *string              `json:"note"`
	DueDate  models.DatePatch     `json:"dueDate"`
	Priority *models.TaskPriority `json:"priority"`
	Status   *models.TaskStatus   `json:"status"`
}

func (h *TaskHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), owner(c), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, err := pathID(c, "task")
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

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), owner(c), models.Task{
		Title:      req.Title,
		Note:       req.Note,
		DueDate:    req.DueDate.Time,
		Priority:   req.Priority,
		FarmlandID: optionalID(req.FarmlandID),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, err := pathID(c, "task")
	if err != nil {
		fail(c, err)
		return
	}
	var req updateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), owner(c), id, models.TaskPatch{
		Title:    req.Title,
		Note:     req.Note,
		DueDate:  req.DueDate,
		Priority: req.Priority,
		Status:   req.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "task")
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
