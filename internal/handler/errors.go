package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/model"
)

func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Warn(op+": invalid input", zap.Any("errors", verr.Fields))
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, model.ErrConflict):
		logger.Warn(op+": integrity violation", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "integrity violation"})
	case errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	default:
		logger.Error(op+": failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
