package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func userView(u *model.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := bindPayload(c, &in); err != nil {
		writeError(c, h.logger, "register", err)
		return
	}

	u, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, "register", err)
		return
	}

	h.logger.Info("user registered", zap.Uint("user_id", u.ID))
	c.JSON(http.StatusCreated, userView(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := bindPayload(c, &in); err != nil {
		writeError(c, h.logger, "login", err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		h.logger.Warn("login failed", zap.String("client_ip", c.ClientIP()), zap.Error(err))
		writeError(c, h.logger, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, h.logger, "profile", err)
		return
	}
	c.JSON(http.StatusOK, userView(u))
}

func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.auth.DeleteAccount(c.Request.Context(), userID); err != nil {
		writeError(c, h.logger, "delete account", err)
		return
	}
	h.logger.Info("user deleted", zap.Uint("user_id", userID))
	c.JSON(http.StatusOK, service.UserDeletedMessage)
}
