// Package seed replaces the stored graph with a fixed data set.
package seed

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

// Summary reports what Run left in the store.
type Summary struct {
	Nodes   int64
	Edges   int64
	Skipped int
}

// Run clears the store and inserts nodes and edges in one transaction.
// Edges naming an unknown label are skipped with a warning.
func Run(ctx context.Context, store repository.Store, nodes []models.NodeInput, edges []EdgeSpec) (Summary, error) {
	var sum Summary
	err := store.Transaction(ctx, func(tx repository.Store) error {
		removedEdges, err := tx.Edges().DeleteAll(ctx)
		if err != nil {
			return err
		}
		removedNodes, err := tx.Nodes().DeleteAll(ctx)
		if err != nil {
			return err
		}
		logger.Named(logger.Seed).Info("cleared existing data", zap.Int64("nodes", removedNodes), zap.Int64("edges", removedEdges))

		ids := make(map[string]uuid.UUID, len(nodes))
		for _, in := range nodes {
			n, err := models.NewNode(in)
			if err != nil {
				return err
			}
			if err := tx.Nodes().Create(ctx, n); err != nil {
				return err
			}
			ids[n.Label] = n.ID
			logger.Named(logger.Seed).Debug("created node", zap.String("label", n.Label), zap.String("type", n.Type))
		}

		for _, spec := range edges {
			source, okSource := ids[spec.Source]
			target, okTarget := ids[spec.Target]
			if !okSource || !okTarget {
				logger.Named(logger.Seed).Warn("skipping edge, node not found", zap.String("source", spec.Source), zap.String("target", spec.Target))
				sum.Skipped++
				continue
			}
			directed := spec.Directed
			e, err := models.NewEdge(models.EdgeInput{
				Source:   source.String(),
				Target:   target.String(),
				Label:    spec.Label,
				Directed: &directed,
			})
			if err != nil {
				return err
			}
			if err := tx.Edges().Create(ctx, e); err != nil {
				return err
			}
			logger.Named(logger.Seed).Debug("created edge", zap.String("source", spec.Source), zap.String("label", spec.Label), zap.String("target", spec.Target))
		}

		if sum.Nodes, err = tx.Nodes().Count(ctx); err != nil {
			return err
		}
		sum.Edges, err = tx.Edges().Count(ctx)
		return err
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}
