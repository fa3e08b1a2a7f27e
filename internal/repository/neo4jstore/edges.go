package neo4jstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

type edgeRepo struct {
	s *Store
}

// Create needs both endpoints to exist because a relationship cannot be
// created without them; a missing endpoint is reported as not found.
func (r *edgeRepo) Create(ctx context.Context, e *models.Edge) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	props, err := edgeProps(e)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid edge properties")
	}
	created, err := runCount(ctx, r.s.write, `
		MATCH (s:GraphNode {id: $source}), (t:GraphNode {id: $target})
		CREATE (s)-[r:EDGE]->(t)
		SET r = $props
		RETURN count(r) AS total
	`, map[string]any{"source": e.Source.String(), "target": e.Target.String(), "props": props}, "create edge failed")
	if err != nil {
		return err
	}
	if created == 0 {
		return appErr.NotFound("One or both nodes not found")
	}
	return nil
}

func (r *edgeRepo) GetByID(ctx context.Context, id uuid.UUID, dest *models.Edge) error {
	res, err := r.s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MATCH (s:GraphNode)-[r:EDGE {id: $id}]->(t:GraphNode)
			RETURN r, s.id AS source, t.id AS target
		`, map[string]any{"id": id.String()})
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			if err := result.Err(); err != nil {
				return nil, err
			}
			return nil, appErr.NotFound("Edge not found")
		}
		return edgeFromRecord(result.Record())
	})
	if err != nil {
		return wrapErr(err, "get edge failed")
	}
	*dest = res.(models.Edge)
	return nil
}

func (r *edgeRepo) List(ctx context.Context) ([]models.Edge, error) {
	res, err := r.s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MATCH (s:GraphNode)-[r:EDGE]->(t:GraphNode)
			RETURN r, s.id AS source, t.id AS target
			ORDER BY r.createdAt, r.id
		`, nil)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]models.Edge, 0, len(records))
		for _, rec := range records {
			e, err := edgeFromRecord(rec)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	})
	if err != nil {
		return nil, wrapErr(err, "list edges failed")
	}
	return res.([]models.Edge), nil
}

func (r *edgeRepo) Count(ctx context.Context) (int64, error) {
	return runCount(ctx, r.s.read, `MATCH ()-[r:EDGE]->() RETURN count(r) AS total`, nil, "count edges failed")
}

func (r *edgeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := runCount(ctx, r.s.write, `MATCH ()-[r:EDGE {id: $id}]->() DELETE r RETURN count(r) AS total`,
		map[string]any{"id": id.String()}, "delete edge failed")
	if err != nil {
		return err
	}
	if n == 0 {
		return appErr.NotFound("Edge not found")
	}
	return nil
}

func (r *edgeRepo) DeleteAll(ctx context.Context) (int64, error) {
	return runCount(ctx, r.s.write, `MATCH ()-[r:EDGE]->() DELETE r RETURN count(r) AS total`, nil, "clear edges failed")
}

func (r *edgeRepo) DeleteByNode(ctx context.Context, nodeID uuid.UUID) (int64, error) {
	return runCount(ctx, r.s.write, `
		MATCH (:GraphNode {id: $id})-[r:EDGE]-()
		WITH DISTINCT r
		DELETE r
		RETURN count(r) AS total
	`, map[string]any{"id": nodeID.String()}, "delete connected edges failed")
}

func (r *edgeRepo) UpdateFields(ctx context.Context, id uuid.UUID, patch models.EdgePatch) (*models.Edge, error) {
	var out models.Edge
	err := r.s.Transaction(ctx, func(tx repository.Store) error {
		txRepo := tx.Edges().(*edgeRepo)
		if err := txRepo.GetByID(ctx, id, &out); err != nil {
			return err
		}
		if err := patch.Apply(&out); err != nil {
			return err
		}
		out.UpdatedAt = time.Now().UTC()
		properties, err := encodeProperties(out.Properties)
		if err != nil {
			return appErr.Wrap(err, appErr.CodeInvalid, "invalid edge properties")
		}
		_, err = txRepo.s.write(ctx, func(t neo4j.ManagedTransaction) (any, error) {
			_, err := t.Run(ctx, `
				MATCH ()-[r:EDGE {id: $id}]->()
				SET r.label = $label, r.properties = $properties, r.directed = $directed, r.updatedAt = $updatedAt
			`, map[string]any{
				"id":         id.String(),
				"label":      out.Label,
				"properties": properties,
				"directed":   out.Directed,
				"updatedAt":  out.UpdatedAt,
			})
			return nil, err
		})
		return wrapErr(err, "update edge failed")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
