package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidID), errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Errors renders the last error a handler attached with c.Error. Typed errors
// keep their message; anything else is a 500 whose detail is hidden in
// production.
func Errors(logger *zap.Logger, production bool) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)

		body := ErrorBody{Message: err.Error()}
		var typed *models.Error
		if errors.As(err, &typed) {
			body.Message = typed.Message
		}
		if status == http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", RequestIDFrom(c)),
				zap.Error(err))
			if production && typed == nil {
				body.Message = "Internal server error"
			}
			if !production {
				body.Stack = fmt.Sprintf("%+v", err)
			}
		}
		c.JSON(status, body)
	}
}

// Recovery turns a panic into a 500 response.
func Recovery(logger *zap.Logger, production bool) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		stack := string(debug.Stack())
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("stack", stack))

		body := ErrorBody{Message: "Internal server error"}
		if !production {
			body.Message = fmt.Sprint(recovered)
			body.Stack = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// NotFound answers requests that match no route.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorBody{Message: "Route " + c.Request.URL.RequestURI() + " not found"})
	}
}
