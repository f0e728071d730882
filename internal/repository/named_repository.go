package repository

import (
	"fmt"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// NewCategoryRepository deletes categories with their tasks' category set to null.
func NewCategoryRepository(db *gorm.DB) *Repository[model.Category] {
	return NewRepository[model.Category](db, "category", func(tx *gorm.DB, id uint) error {
		if err := tx.Model(&model.Task{}).Unscoped().
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach tasks from category: %w", err)
		}
		return nil
	})
}

// NewStatusRepository deletes statuses with their tasks moved to defaultStatusID.
// When the default status is the one being deleted, or does not exist, the
// tasks end up with no status.
func NewStatusRepository(db *gorm.DB, defaultStatusID uint) *Repository[model.Status] {
	return NewRepository[model.Status](db, "status", func(tx *gorm.DB, id uint) error {
		var target any
		if defaultStatusID != 0 && defaultStatusID != id {
			var count int64
			if err := tx.Model(&model.Status{}).Where("id = ?", defaultStatusID).Count(&count).Error; err != nil {
				return fmt.Errorf("find default status: %w", err)
			}
			if count > 0 {
				target = defaultStatusID
			}
		}
		if err := tx.Model(&model.Task{}).Unscoped().
			Where("status_id = ?", id).
			UpdateColumn("status_id", target).Error; err != nil {
			return fmt.Errorf("reassign tasks status: %w", err)
		}
		return nil
	})
}
