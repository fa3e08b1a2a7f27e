// Package storage opens the graph store selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository/memory"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository/neo4jstore"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/config"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/database"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
	"go.uber.org/zap"
)

// Open connects to the store named by cfg.StoreDriver. The caller owns the
// returned Store and must Close it.
func Open(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			return nil, err
		}
		logger.Named(logger.Store).Info("postgres store ready")
		return repository.NewGormStore(db), nil

	case config.DriverNeo4j:
		ncfg, err := neo4jstore.ParseURL(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s, err := neo4jstore.Open(ctx, ncfg)
		if err != nil {
			return nil, err
		}
		logger.Named(logger.Store).Info("neo4j store ready", zap.String("uri", ncfg.URI), zap.String("database", ncfg.Database))
		return s, nil

	case config.DriverMemory:
		logger.Named(logger.Store).Warn("using in-memory store, data is lost on exit")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Migrate runs schema setup when the store needs it.
func Migrate(ctx context.Context, s repository.Store) error {
	m, ok := s.(repository.Migrator)
	if !ok {
		return nil
	}
	return m.Migrate(ctx)
}
