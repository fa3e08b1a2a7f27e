package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

type nodeRepository struct {
	BaseRepository[models.Node]
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &nodeRepository{BaseRepository: NewBaseRepository[models.Node](db, "Node"), db: db}
}

func (r *nodeRepository) UpdateFields(ctx context.Context, id uuid.UUID, patch models.NodePatch) (*models.Node, error) {
	var n models.Node
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&n, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appErr.NotFound("Node not found")
			}
			return storeErr(err, "load node failed")
		}
		if err := patch.Apply(&n); err != nil {
			return err
		}
		if err := tx.Save(&n).Error; err != nil {
			return storeErr(err, "update node failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *nodeRepository) Search(ctx context.Context, query string, limit int) ([]models.Node, error) {
	pattern := "%" + escapeLike(query) + "%"
	out := []models.Node{}
	err := r.db.WithContext(ctx).
		Where("label ILIKE ? OR type ILIKE ?", pattern, pattern).
		Order("created_at, id").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, storeErr(err, "search nodes failed")
	}
	return out, nil
}

func (r *nodeRepository) ExistAll(ctx context.Context, mode LockMode, ids ...uuid.UUID) (bool, error) {
	ids = Unique(ids)
	if len(ids) == 0 {
		return true, nil
	}

	q := r.db.WithContext(ctx).Model(&models.Node{}).Where("id IN ?", ids)
	switch mode {
	case LockShare:
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	case LockUpdate:
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var found []uuid.UUID
	if err := q.Pluck("id", &found).Error; err != nil {
		return false, storeErr(err, "lookup nodes failed")
	}
	return len(found) == len(ids), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes query match literally inside a LIKE pattern.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}
