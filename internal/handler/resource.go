package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/metrics"
	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

// Store is the persistence a Resource drives.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
}

// Resource serves list/create/retrieve/update/delete for one entity type.
// T is the stored record and P the request payload.
type Resource[T any, P any] struct {
	Name     string
	Messages service.Messages
	// Store returns the store visible to the authenticated user.
	Store func(userID uint) Store[T]
	Build func(ctx context.Context, userID uint, in P) (T, error)
	Apply func(ctx context.Context, item *T, in P, partial bool) error
	// View renders a record for list and retrieve responses.
	View func(item T) any
	// Echo returns the created fields merged into the create response.
	Echo   func(item T) gin.H
	Logger *zap.Logger
}

// Register mounts the list and detail routes under path, with and without
// the trailing slash.
func (r *Resource[T, P]) Register(g *gin.RouterGroup, path string) {
	detail := path + "/:id"
	for _, p := range []string{path, path + "/"} {
		g.GET(p, r.List)
		g.POST(p, r.Create)
	}
	for _, p := range []string{detail, detail + "/"} {
		g.GET(p, r.Retrieve)
		g.PUT(p, r.Update)
		g.PATCH(p, r.PartialUpdate)
		g.DELETE(p, r.Delete)
	}
}

func (r *Resource[T, P]) List(c *gin.Context) {
	items, err := r.Store(CurrentUserID(c)).List(c.Request.Context())
	if err != nil {
		writeError(c, r.Logger, "list "+r.Name, err)
		return
	}

	views := make([]any, 0, len(items))
	for _, it := range items {
		views = append(views, r.View(it))
	}
	if len(views) == 0 {
		// 204 carries no body; clients read it as an empty list.
		c.JSON(http.StatusNoContent, views)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (r *Resource[T, P]) Create(c *gin.Context) {
	var in P
	if err := bindPayload(c, &in); err != nil {
		writeError(c, r.Logger, "create "+r.Name, err)
		return
	}

	userID := CurrentUserID(c)
	item, err := r.Build(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, r.Logger, "create "+r.Name, err)
		return
	}
	if err := r.Store(userID).Create(c.Request.Context(), &item); err != nil {
		writeError(c, r.Logger, "create "+r.Name, err)
		return
	}

	metrics.IncrementMutation(r.Name, "create")
	r.Logger.Info("resource created", zap.String("resource", r.Name), zap.Uint("user_id", userID))

	resp := gin.H{}
	for k, v := range r.Echo(item) {
		resp[k] = v
	}
	resp["message"] = r.Messages.Created
	c.JSON(http.StatusCreated, resp)
}

func (r *Resource[T, P]) Retrieve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := r.Store(CurrentUserID(c)).Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, r.Logger, "retrieve "+r.Name, err)
		return
	}
	c.JSON(http.StatusOK, r.View(*item))
}

func (r *Resource[T, P]) Update(c *gin.Context) {
	r.update(c, false)
}

func (r *Resource[T, P]) PartialUpdate(c *gin.Context) {
	r.update(c, true)
}

func (r *Resource[T, P]) update(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	op := "update " + r.Name
	store := r.Store(CurrentUserID(c))

	item, err := store.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, r.Logger, op, err)
		return
	}

	var in P
	if err := bindPayload(c, &in); err != nil {
		writeError(c, r.Logger, op, err)
		return
	}
	if err := r.Apply(c.Request.Context(), item, in, partial); err != nil {
		writeError(c, r.Logger, op, err)
		return
	}
	if err := store.Update(c.Request.Context(), item); err != nil {
		writeError(c, r.Logger, op, err)
		return
	}

	metrics.IncrementMutation(r.Name, "update")
	r.Logger.Info("resource updated", zap.String("resource", r.Name), zap.Uint("id", id))
	c.JSON(http.StatusOK, gin.H{"message": r.Messages.Updated})
}

func (r *Resource[T, P]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := r.Store(CurrentUserID(c)).Delete(c.Request.Context(), id); err != nil {
		writeError(c, r.Logger, "delete "+r.Name, err)
		return
	}

	metrics.IncrementMutation(r.Name, "delete")
	r.Logger.Info("resource deleted", zap.String("resource", r.Name), zap.Uint("id", id))
	c.JSON(http.StatusOK, r.Messages.Deleted)
}

func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

// bindPayload decodes JSON, urlencoded or multipart bodies by Content-Type.
// An empty body leaves in untouched so validation can report missing fields.
func bindPayload(c *gin.Context, in any) error {
	if err := c.ShouldBind(in); err != nil && !errors.Is(err, io.EOF) {
		verr := model.NewValidationError()
		verr.Add("non_field_errors", "Malformed request body.")
		return verr
	}
	return nil
}
