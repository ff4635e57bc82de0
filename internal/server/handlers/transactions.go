package handlers

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransactionService is implemented by service/finance.
type TransactionService interface {
	List(ctx context.Context, ownerID primitive.ObjectID, filter models.TransactionFilter) ([]models.Transaction, error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Transaction, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, tx models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
	Export(ctx context.Context, ownerID primitive.ObjectID, filter models.TransactionFilter, w io.Writer) error
}

type TransactionHandler struct {
	svc    TransactionService
	logger *zap.Logger
	now    func() time.Time
}

func NewTransactionHandler(svc TransactionService, logger *zap.Logger) *TransactionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionHandler{svc: svc, logger: logger, now: time.Now}
}

// Malformed farmlandId or employeeId values are dropped, not rejected.
type createTransactionRequest struct {
	Type       models.TransactionType `json:"type" binding:"oneof=income expense" msg:"Type must be income or expense"`
	Amount     float64                `json:"amountRwf" binding:"gt=0,lte=9007199254740991" msg:"Amount must be a positive number" msg_lte:"Amount must not exceed 9007199254740991"`
	Date       models.FlexDate        `json:"date" msg:"Date is required"`
	Category   string                 `json:"category" msg:"Category is required"`
	Note       string                 `json:"note"`
	FarmlandID string                 `json:"farmlandId"`
	EmployeeID string                 `json:"employeeId"`
}

func filterFromQuery(c *gin.Context) models.TransactionFilter {
	filter := models.TransactionFilter{
		Type:       models.TransactionType(c.Query("type")),
		Category:   c.Query("category"),
		FarmlandID: optionalID(c.Query("farmlandId")),
		EmployeeID: optionalID(c.Query("employeeId")),
		Limit:      queryLimit(c, 0),
	}
	if from, err := models.ParseDate(c.Query("from")); err == nil {
		filter.From = from
	}
	if to, err := models.ParseDate(c.Query("to")); err == nil {
		filter.To = to
	}
	return filter
}

func (h *TransactionHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), owner(c), filterFromQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := pathID(c, "transaction")
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

func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	tx := models.Transaction{
		Type:       req.Type,
		Amount:     int64(math.Round(req.Amount)),
		Category:   req.Category,
		Note:       req.Note,
		FarmlandID: optionalID(req.FarmlandID),
		EmployeeID: optionalID(req.EmployeeID),
	}
	if req.Date.Time != nil {
		tx.Date = *req.Date.Time
	}

	created, err := h.svc.Create(c.Request.Context(), owner(c), tx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "transaction")
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

// Export streams the filtered ledger as an xlsx download.
func (h *TransactionHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request.Context(), owner(c), filterFromQuery(c), &buf); err != nil {
		fail(c, err)
		return
	}

	fileName := "transactions-" + h.now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
