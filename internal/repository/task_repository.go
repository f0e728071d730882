package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	*Repository[model.Task]
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	repo := NewRepository[model.Task](db, "task", nil)
	repo.onDuplicate = titleTaken
	return &TaskRepository{Repository: repo, db: db}
}

// titleTaken reports a hit on the live (title, date_started) unique index.
func titleTaken() error {
	verr := model.NewValidationError()
	verr.Add("title", model.MsgTitleTaken)
	return verr
}

// OwnedBy narrows every query to the tasks created by userID.
func (r *TaskRepository) OwnedBy(userID uint) *Repository[model.Task] {
	return r.Scoped(func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_id = ?", userID)
	})
}

// TitleTaken reports whether a live task other than excludeID already uses
// title on the given start date.
func (r *TaskRepository) TitleTaken(ctx context.Context, title string, dateStarted time.Time, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("title = ? AND date_started = ?", title, dateStarted)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check task title: %w", err)
	}
	return count > 0, nil
}

// PurgeDeleted permanently removes tasks soft-deleted before the cutoff.
func (r *TaskRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// CountAll counts tasks including soft-deleted ones.
func (r *TaskRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&model.Task{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}
