package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
)

// SearchLimit caps the number of nodes returned by a text search.
const SearchLimit = 20

// LockMode selects the row lock taken by NodeRepository.ExistAll inside a
// transaction. Stores without row locks treat every mode as LockNone.
type LockMode int

const (
	LockNone LockMode = iota
	LockShare
	LockUpdate
)

// BaseRepository defines common CRUD operations.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id uuid.UUID, dest *T) error
	List(ctx context.Context) ([]T, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

// NodeRepository persists nodes.
type NodeRepository interface {
	BaseRepository[models.Node]
	// UpdateFields applies patch to the node and returns the stored result.
	UpdateFields(ctx context.Context, id uuid.UUID, patch models.NodePatch) (*models.Node, error)
	// Search matches query case-insensitively against label or type.
	Search(ctx context.Context, query string, limit int) ([]models.Node, error)
	// ExistAll reports whether every id names a stored node, locking the
	// matched rows with mode for the rest of the enclosing transaction.
	ExistAll(ctx context.Context, mode LockMode, ids ...uuid.UUID) (bool, error)
}

// EdgeRepository persists edges.
type EdgeRepository interface {
	BaseRepository[models.Edge]
	UpdateFields(ctx context.Context, id uuid.UUID, patch models.EdgePatch) (*models.Edge, error)
	// DeleteByNode removes every edge whose source or target is nodeID and
	// returns how many were removed.
	DeleteByNode(ctx context.Context, nodeID uuid.UUID) (int64, error)
}

// Store groups the repositories behind one connection or transaction.
type Store interface {
	Nodes() NodeRepository
	Edges() EdgeRepository
	// Transaction runs fn atomically. If fn returns an error every write made
	// through tx is discarded. Calling Transaction on a transactional Store
	// joins the outer transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	// Snapshot runs fn against a consistent read-only view.
	Snapshot(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Migrator is implemented by stores that need schema setup.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Unique drops duplicate ids, keeping first occurrences.
func Unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
