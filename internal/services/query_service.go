package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

// QueryService serves read-only views of the graph.
type QueryService interface {
	// GetGraph returns every node and every edge from one consistent view.
	GetGraph(ctx context.Context) (*models.Graph, error)
	// SearchNodes matches query against node label or type. A nil query is a
	// validation failure; a blank one matches nothing.
	SearchNodes(ctx context.Context, query *string) ([]models.Node, error)
	GetNode(ctx context.Context, id string) (*models.Node, error)
	GetEdge(ctx context.Context, id string) (*models.Edge, error)
}

type queryService struct {
	store repository.Store
}

func NewQueryService(store repository.Store) QueryService {
	return &queryService{store: store}
}

var _ QueryService = (*queryService)(nil)

func (s *queryService) GetGraph(ctx context.Context) (*models.Graph, error) {
	var g models.Graph
	err := s.store.Snapshot(ctx, func(tx repository.Store) error {
		nodes, err := tx.Nodes().List(ctx)
		if err != nil {
			return err
		}
		edges, err := tx.Edges().List(ctx)
		if err != nil {
			return err
		}
		g.Nodes, g.Edges = nodes, edges
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Drop edges whose endpoints are not part of this node set.
	present := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		present[n.ID.String()] = struct{}{}
	}
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		_, src := present[e.Source.String()]
		_, dst := present[e.Target.String()]
		if src && dst {
			kept = append(kept, e)
		}
	}
	if dropped := len(g.Edges) - len(kept); dropped > 0 {
		logger.Named(logger.Service).Warn("graph read skipped dangling edges", zap.Int("dropped", dropped))
	}
	g.Edges = kept

	if g.Nodes == nil {
		g.Nodes = []models.Node{}
	}
	if g.Edges == nil {
		g.Edges = []models.Edge{}
	}
	logger.Named(logger.Service).Debug("graph loaded", zap.Int("nodes", len(g.Nodes)), zap.Int("edges", len(g.Edges)))
	return &g, nil
}

func (s *queryService) SearchNodes(ctx context.Context, query *string) ([]models.Node, error) {
	if query == nil {
		return nil, appErr.Invalid("Search query is required")
	}
	q := strings.TrimSpace(*query)
	if q == "" {
		return []models.Node{}, nil
	}
	nodes, err := s.store.Nodes().Search(ctx, q, repository.SearchLimit)
	if err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []models.Node{}
	}
	logger.Named(logger.Service).Debug("search nodes", zap.String("query", q), zap.Int("matches", len(nodes)))
	return nodes, nil
}

func (s *queryService) GetNode(ctx context.Context, rawID string) (*models.Node, error) {
	id, err := models.ParseID(rawID)
	if err != nil {
		return nil, appErr.Invalid("Invalid node ID")
	}
	var n models.Node
	if err := s.store.Nodes().GetByID(ctx, id, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *queryService) GetEdge(ctx context.Context, rawID string) (*models.Edge, error) {
	id, err := models.ParseID(rawID)
	if err != nil {
		return nil, appErr.Invalid("Invalid edge ID")
	}
	var e models.Edge
	if err := s.store.Edges().GetByID(ctx, id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
