package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/service"
	"task-tracker/internal/util"
)

const userIDKey = "user_id"

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's id in the context.
func AuthMiddleware(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), util.ExtractToken(c.Request))
		if err != nil {
			writeError(c, logger, "authenticate", err)
			c.Abort()
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or 0 outside AuthMiddleware.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
