// Package handlers adapts HTTP requests to the farm services. Handlers attach
// failures with c.Error and leave rendering to the error middleware.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/server/middleware"
)

// DeleteResponse acknowledges a removed record.
type DeleteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func owner(c *gin.Context) primitive.ObjectID {
	return middleware.OwnerID(c)
}

// pathID parses the :id segment, reporting a malformed id for entity.
func pathID(c *gin.Context, entity string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, models.InvalidIDError(entity)
	}
	return id, nil
}

// optionalID returns nil for empty or malformed ids.
func optionalID(raw string) *primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &id
}

func deleted(c *gin.Context, id primitive.ObjectID) {
	c.JSON(http.StatusOK, DeleteResponse{ID: id.Hex(), Message: "Deleted"})
}

func queryLimit(c *gin.Context, fallback int64) int64 {
	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

// Health answers liveness probes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
