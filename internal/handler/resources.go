package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

// NewCategoryResource serves categories from store, shared by every user.
func NewCategoryResource(store Store[model.Category], logger *zap.Logger) *Resource[model.Category, service.NameInput] {
	return &Resource[model.Category, service.NameInput]{
		Name:     "category",
		Messages: service.CategoryMessages,
		Store:    func(uint) Store[model.Category] { return store },
		Build: func(_ context.Context, _ uint, in service.NameInput) (model.Category, error) {
			return service.NewCategory(in)
		},
		Apply: func(_ context.Context, c *model.Category, in service.NameInput, partial bool) error {
			name, err := in.Resolve(c.Name, partial)
			if err != nil {
				return err
			}
			c.Name = name
			return nil
		},
		View:   func(c model.Category) any { return c },
		Echo:   func(c model.Category) gin.H { return gin.H{"name": c.Name} },
		Logger: logger,
	}
}

// NewStatusResource serves statuses from store, shared by every user.
func NewStatusResource(store Store[model.Status], logger *zap.Logger) *Resource[model.Status, service.NameInput] {
	return &Resource[model.Status, service.NameInput]{
		Name:     "status",
		Messages: service.StatusMessages,
		Store:    func(uint) Store[model.Status] { return store },
		Build: func(_ context.Context, _ uint, in service.NameInput) (model.Status, error) {
			return service.NewStatus(in)
		},
		Apply: func(_ context.Context, s *model.Status, in service.NameInput, partial bool) error {
			name, err := in.Resolve(s.Name, partial)
			if err != nil {
				return err
			}
			s.Name = name
			return nil
		},
		View:   func(s model.Status) any { return s },
		Echo:   func(s model.Status) gin.H { return gin.H{"name": s.Name} },
		Logger: logger,
	}
}

type taskView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateStarted *string   `json:"date_started"`
	Deadline    *string   `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Category    *uint     `json:"category"`
	Creator     *uint     `json:"creator"`
	Status      *uint     `json:"status"`
}

func newTaskView(t model.Task) taskView {
	return taskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DateStarted: service.FormatDate(t.DateStarted),
		Deadline:    service.FormatDate(t.Deadline),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Category:    t.CategoryID,
		Creator:     t.CreatorID,
		Status:      t.StatusID,
	}
}

// NewTaskResource serves tasks; each user only sees the tasks they created.
func NewTaskResource(stores func(userID uint) Store[model.Task], tasks *service.TaskService, logger *zap.Logger) *Resource[model.Task, service.TaskInput] {
	return &Resource[model.Task, service.TaskInput]{
		Name:     "task",
		Messages: service.TaskMessages,
		Store:    stores,
		Build:    tasks.Build,
		Apply: func(ctx context.Context, t *model.Task, in service.TaskInput, _ bool) error {
			return tasks.Apply(ctx, t, in)
		},
		View: func(t model.Task) any { return newTaskView(t) },
		Echo: func(t model.Task) gin.H {
			v := newTaskView(t)
			return gin.H{
				"id":           v.ID,
				"title":        v.Title,
				"description":  v.Description,
				"date_started": v.DateStarted,
				"deadline":     v.Deadline,
				"category":     v.Category,
				"status":       v.Status,
			}
		},
		Logger: logger,
	}
}
