package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/database"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

type gormStore struct {
	db   *gorm.DB
	inTx bool
}

// NewGormStore returns a Store backed by a gorm connection pool.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Nodes() NodeRepository { return NewNodeRepository(s.db) }
func (s *gormStore) Edges() EdgeRepository { return NewEdgeRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.run(ctx, nil, fn)
}

// Snapshot reads inside a REPEATABLE READ transaction so consecutive queries
// see one committed state.
func (s *gormStore) Snapshot(ctx context.Context, fn func(tx Store) error) error {
	return s.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (s *gormStore) run(ctx context.Context, opts *sql.TxOptions, fn func(tx Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	var tx *gorm.DB
	if opts != nil {
		tx = s.db.WithContext(ctx).Begin(opts)
	} else {
		tx = s.db.WithContext(ctx).Begin()
	}
	if tx.Error != nil {
		return storeErr(tx.Error, "begin transaction failed")
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(&gormStore{db: tx, inTx: true}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			logger.Named(logger.Store).Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return storeErr(err, "commit transaction failed")
	}
	return nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storeErr(err, "database handle unavailable")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storeErr(err, "database ping failed")
	}
	return nil
}

func (s *gormStore) Close(ctx context.Context) error {
	if s.inTx {
		return fmt.Errorf("close called inside a transaction")
	}
	return database.Close(s.db)
}
