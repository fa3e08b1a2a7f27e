package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

type edgeRepository struct {
	BaseRepository[models.Edge]
	db *gorm.DB
}

func NewEdgeRepository(db *gorm.DB) EdgeRepository {
	return &edgeRepository{BaseRepository: NewBaseRepository[models.Edge](db, "Edge"), db: db}
}

func (r *edgeRepository) UpdateFields(ctx context.Context, id uuid.UUID, patch models.EdgePatch) (*models.Edge, error) {
	var e models.Edge
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appErr.NotFound("Edge not found")
			}
			return storeErr(err, "load edge failed")
		}
		if err := patch.Apply(&e); err != nil {
			return err
		}
		if err := tx.Save(&e).Error; err != nil {
			return storeErr(err, "update edge failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *edgeRepository) DeleteByNode(ctx context.Context, nodeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("source = ? OR target = ?", nodeID, nodeID).Delete(&models.Edge{})
	if res.Error != nil {
		return 0, storeErr(res.Error, "delete connected edges failed")
	}
	return res.RowsAffected, nil
}
