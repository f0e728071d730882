package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"task-tracker/internal/handler"
	"task-tracker/internal/service"
)

// Resource is anything that mounts its CRUD routes on a group.
type Resource interface {
	Register(g *gin.RouterGroup, path string)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	categories Resource,
	statuses Resource,
	tasks Resource,
	db Pinger,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Public
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// Protected
	protected := v1.Group("")
	protected.Use(handler.AuthMiddleware(authService, logger))
	{
		protected.GET("/users/me", authHandler.Me)
		protected.DELETE("/users/me", authHandler.DeleteMe)
		categories.Register(protected, "/categories")
		statuses.Register(protected, "/statuses")
		tasks.Register(protected, "/tasks")
	}

	return &Router{Engine: r}
}

func (r *Router) Handler() http.Handler {
	return r.Engine
}
