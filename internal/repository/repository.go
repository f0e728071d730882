package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// DeleteHook runs inside the delete transaction before the row is removed.
type DeleteHook func(tx *gorm.DB, id uint) error

// Repository handles CRUD for a single gorm model.
type Repository[T any] struct {
	db           *gorm.DB
	name         string
	scopes       []func(*gorm.DB) *gorm.DB
	beforeDelete DeleteHook
	// onDuplicate, when set, replaces the generic conflict for unique
	// violations raised by Create and Update.
	onDuplicate func() error
}

func NewRepository[T any](db *gorm.DB, name string, beforeDelete DeleteHook) *Repository[T] {
	return &Repository[T]{db: db, name: name, beforeDelete: beforeDelete}
}

// Scoped returns a copy of r whose queries are narrowed by scope.
func (r *Repository[T]) Scoped(scope func(*gorm.DB) *gorm.DB) *Repository[T] {
	cp := *r
	cp.scopes = append(append([]func(*gorm.DB) *gorm.DB(nil), r.scopes...), scope)
	return &cp
}

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Scopes(r.scopes...)
}

// List returns all records in insertion order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.query(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, translate(err))
	}
	return items, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.query(ctx).First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.name, id, translate(err))
	}
	return &item, nil
}

func (r *Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.query(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s %d: %w", r.name, id, translate(err))
	}
	return count > 0, nil
}

func (r *Repository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.name, r.translateWrite(err))
	}
	return nil
}

// Update saves every column of item, which must carry its primary key.
func (r *Repository[T]) Update(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("update %s: %w", r.name, r.translateWrite(err))
	}
	return nil
}

// Delete removes the record and runs the delete hook in the same transaction.
// Models with a gorm.DeletedAt field are soft-deleted.
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.Scopes(r.scopes...).First(&item, id).Error; err != nil {
			return err
		}
		if r.beforeDelete != nil {
			if err := r.beforeDelete(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.name, id, translate(err))
	}
	return nil
}

func (r *Repository[T]) translateWrite(err error) error {
	if r.onDuplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.onDuplicate()
	}
	return translate(err)
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	default:
		return err
	}
}
