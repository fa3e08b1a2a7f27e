package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/database"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

type baseRepository[T any] struct {
	db   *gorm.DB
	name string
}

// NewBaseRepository returns gorm-backed CRUD for T. name is used in error
// messages, e.g. "Node not found".
func NewBaseRepository[T any](db *gorm.DB, name string) BaseRepository[T] {
	return &baseRepository[T]{db: db, name: name}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return storeErr(err, fmt.Sprintf("create %s failed", r.name))
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id uuid.UUID, dest *T) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.NotFound(fmt.Sprintf("%s not found", r.name))
		}
		return storeErr(err, fmt.Sprintf("get %s failed", r.name))
	}
	return nil
}

func (r *baseRepository[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&out).Error; err != nil {
		return nil, storeErr(err, fmt.Sprintf("list %s failed", r.name))
	}
	return out, nil
}

func (r *baseRepository[T]) Count(ctx context.Context) (int64, error) {
	var t T
	var n int64
	if err := r.db.WithContext(ctx).Model(&t).Count(&n).Error; err != nil {
		return 0, storeErr(err, fmt.Sprintf("count %s failed", r.name))
	}
	return n, nil
}

func (r *baseRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var t T
	res := r.db.WithContext(ctx).Delete(&t, "id = ?", id)
	if res.Error != nil {
		return storeErr(res.Error, fmt.Sprintf("delete %s failed", r.name))
	}
	if res.RowsAffected == 0 {
		return appErr.NotFound(fmt.Sprintf("%s not found", r.name))
	}
	return nil
}

func (r *baseRepository[T]) DeleteAll(ctx context.Context) (int64, error) {
	var t T
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&t)
	if res.Error != nil {
		return 0, storeErr(res.Error, fmt.Sprintf("clear %s failed", r.name))
	}
	return res.RowsAffected, nil
}

// storeErr wraps a driver error as an internal AppError, carrying the
// Postgres SQLSTATE when there is one.
func storeErr(err error, message string) *appErr.AppError {
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		return ae
	}
	e := appErr.Internal(err, message)
	if code, ok := database.SQLState(err); ok {
		e.WithMeta("sqlstate", code)
	}
	return e
}
