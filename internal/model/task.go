package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultTaskTitle       = "DEFAULT TITLE"
	DefaultTaskDescription = "Here you can add your description..."

	MaxTaskTitleLength       = 75
	MaxTaskDescriptionLength = 1500

	MsgTitleTaken = `Title must be unique for "date_started" date.`
)

// Task represents a single item in the tracker. DeletedAt makes deletes soft:
// gorm hides such rows from regular queries until they are purged.
type Task struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"size:75;not null;uniqueIndex:idx_tasks_title_date,priority:1,where:deleted_at IS NULL"`
	Description string     `gorm:"size:1500;not null"`
	DateStarted *time.Time `gorm:"type:date;index;uniqueIndex:idx_tasks_title_date,priority:2"`
	Deadline    *time.Time `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	CategoryID *uint     `gorm:"index"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL"`
	CreatorID  *uint     `gorm:"index"`
	Creator    *User     `gorm:"constraint:OnDelete:CASCADE"`
	StatusID   *uint     `gorm:"index"`
	Status     *Status   `gorm:"constraint:OnDelete:SET NULL"`
}
