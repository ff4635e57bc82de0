package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// AdvisorService is implemented by service/advisor. It never fails; provider
// problems come back as a canned reply.
type AdvisorService interface {
	Chat(ctx context.Context, req models.ChatRequest) models.ChatReply
}

type AssistantHandler struct {
	svc    AdvisorService
	logger *zap.Logger
}

func NewAssistantHandler(svc AdvisorService, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Chat(c.Request.Context(), req))
}
