package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.Node{},
		&models.Edge{},
	}
}

type migration struct {
	name string
	run  func(*gorm.DB) error
	// optional migrations only speed things up; a failure is logged and skipped.
	optional bool
}

// customMigrations handles schema changes AutoMigrate can't handle
var customMigrations = []migration{
	{name: "pg_trgm extension", run: enableTrigramExtension, optional: true},
	{name: "node search indexes", run: addNodeSearchIndexes, optional: true},
}

// Migrate creates or updates the nodes and edges tables.
func (s *gormStore) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	skipRest := false
	for _, m := range customMigrations {
		if skipRest && m.optional {
			logger.Named(logger.Store).Warn("migration skipped", zap.String("migration", m.name))
			continue
		}
		if err := m.run(db); err != nil {
			if !m.optional {
				return fmt.Errorf("migration %q: %w", m.name, err)
			}
			logger.Named(logger.Store).Warn("optional migration failed", zap.String("migration", m.name), zap.Error(err))
			skipRest = true
		}
	}
	return nil
}

func enableTrigramExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`).Error
}

// addNodeSearchIndexes backs the ILIKE filters used by Search.
func addNodeSearchIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_nodes_label_trgm
		ON nodes USING gin (label gin_trgm_ops)
	`).Error; err != nil {
		return err
	}
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_nodes_type_trgm
		ON nodes USING gin (type gin_trgm_ops)
	`).Error
}
