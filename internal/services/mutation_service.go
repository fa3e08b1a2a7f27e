package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/observability"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

// MutationService validates and applies writes to nodes and edges.
type MutationService interface {
	// Node CRUD
	CreateNode(ctx context.Context, input models.NodeInput) (*models.Node, error)
	UpdateNode(ctx context.Context, id string, patch models.NodePatch) (*models.Node, error)
	// DeleteNode removes the node and every edge touching it in one
	// transaction and returns how many edges went with it.
	DeleteNode(ctx context.Context, id string) (int64, error)

	// Edge CRUD
	CreateEdge(ctx context.Context, input models.EdgeInput) (*models.Edge, error)
	UpdateEdge(ctx context.Context, id string, patch models.EdgePatch) (*models.Edge, error)
	DeleteEdge(ctx context.Context, id string) error
}

type mutationService struct {
	store   repository.Store
	metrics *observability.Collector
}

// NewMutationService builds a MutationService. metrics may be nil.
func NewMutationService(store repository.Store, metrics *observability.Collector) MutationService {
	return &mutationService{store: store, metrics: metrics}
}

var _ MutationService = (*mutationService)(nil)

func (s *mutationService) CreateNode(ctx context.Context, input models.NodeInput) (*models.Node, error) {
	n, err := models.NewNode(input)
	if err != nil {
		return nil, err
	}
	if err := s.store.Nodes().Create(ctx, n); err != nil {
		return nil, err
	}
	s.metrics.NodeCreated()
	logger.Named(logger.Service).Info("node created", zap.String("node_id", n.ID.String()), zap.String("type", n.Type))
	return n, nil
}

func (s *mutationService) UpdateNode(ctx context.Context, rawID string, patch models.NodePatch) (*models.Node, error) {
	id, err := models.ParseID(rawID)
	if err != nil {
		return nil, appErr.Invalid("Invalid node ID")
	}
	if patch.IsEmpty() {
		var n models.Node
		if err := s.store.Nodes().GetByID(ctx, id, &n); err != nil {
			return nil, err
		}
		return &n, nil
	}
	n, err := s.store.Nodes().UpdateFields(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logger.Named(logger.Service).Info("node updated", zap.String("node_id", id.String()))
	return n, nil
}

func (s *mutationService) DeleteNode(ctx context.Context, rawID string) (int64, error) {
	id, err := models.ParseID(rawID)
	if err != nil {
		return 0, appErr.Invalid("Invalid node ID")
	}

	var removed int64
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		// Lock the node first so no edge can be attached to it while the
		// cascade runs.
		ok, err := tx.Nodes().ExistAll(ctx, repository.LockUpdate, id)
		if err != nil {
			return err
		}
		if !ok {
			return appErr.NotFound("Node not found")
		}
		removed, err = tx.Edges().DeleteByNode(ctx, id)
		if err != nil {
			return err
		}
		return tx.Nodes().Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	s.metrics.NodeDeleted(removed)
	logger.Named(logger.Service).Info("node deleted", zap.String("node_id", id.String()), zap.Int64("edges_removed", removed))
	return removed, nil
}

func (s *mutationService) CreateEdge(ctx context.Context, input models.EdgeInput) (*models.Edge, error) {
	e, err := models.NewEdge(input)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		ok, err := tx.Nodes().ExistAll(ctx, repository.LockShare, e.Source, e.Target)
		if err != nil {
			return err
		}
		if !ok {
			return appErr.NotFound("One or both nodes not found")
		}
		return tx.Edges().Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.EdgeCreated()
	logger.Named(logger.Service).Info("edge created",
		zap.String("edge_id", e.ID.String()),
		zap.String("source", e.Source.String()),
		zap.String("target", e.Target.String()),
	)
	return e, nil
}

func (s *mutationService) UpdateEdge(ctx context.Context, rawID string, patch models.EdgePatch) (*models.Edge, error) {
	id, err := models.ParseID(rawID)
	if err != nil {
		return nil, appErr.Invalid("Invalid edge ID")
	}
	if patch.IsEmpty() {
		var e models.Edge
		if err := s.store.Edges().GetByID(ctx, id, &e); err != nil {
			return nil, err
		}
		return &e, nil
	}
	e, err := s.store.Edges().UpdateFields(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logger.Named(logger.Service).Info("edge updated", zap.String("edge_id", id.String()))
	return e, nil
}

func (s *mutationService) DeleteEdge(ctx context.Context, rawID string) error {
	id, err := models.ParseID(rawID)
	if err != nil {
		return appErr.Invalid("Invalid edge ID")
	}
	if err := s.store.Edges().Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.EdgeDeleted()
	logger.Named(logger.Service).Info("edge deleted", zap.String("edge_id", id.String()))
	return nil
}
