package neo4jstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

type nodeRepo struct {
	s *Store
}

func (r *nodeRepo) Create(ctx context.Context, n *models.Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	now := time.Now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now

	props, err := nodeProps(n)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid node properties")
	}
	_, err = r.s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `CREATE (n:GraphNode) SET n = $props`, map[string]any{"props": props})
		return nil, err
	})
	return wrapErr(err, "create node failed")
}

func (r *nodeRepo) GetByID(ctx context.Context, id uuid.UUID, dest *models.Node) error {
	res, err := r.s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `MATCH (n:GraphNode {id: $id}) RETURN n`, map[string]any{"id": id.String()})
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			if err := result.Err(); err != nil {
				return nil, err
			}
			return nil, appErr.NotFound("Node not found")
		}
		return nodeFromRecord(result.Record(), "n")
	})
	if err != nil {
		return wrapErr(err, "get node failed")
	}
	*dest = res.(models.Node)
	return nil
}

func (r *nodeRepo) List(ctx context.Context) ([]models.Node, error) {
	return r.query(ctx, `MATCH (n:GraphNode) RETURN n ORDER BY n.createdAt, n.id`, nil, "list nodes failed")
}

func (r *nodeRepo) Search(ctx context.Context, query string, limit int) ([]models.Node, error) {
	return r.query(ctx, `
		MATCH (n:GraphNode)
		WHERE toLower(n.label) CONTAINS $q OR toLower(n.type) CONTAINS $q
		RETURN n ORDER BY n.createdAt, n.id
		LIMIT $limit
	`, map[string]any{"q": strings.ToLower(query), "limit": int64(limit)}, "search nodes failed")
}

func (r *nodeRepo) query(ctx context.Context, cypher string, params map[string]any, failure string) ([]models.Node, error) {
	res, err := r.s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]models.Node, 0, len(records))
		for _, rec := range records {
			n, err := nodeFromRecord(rec, "n")
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	})
	if err != nil {
		return nil, wrapErr(err, failure)
	}
	return res.([]models.Node), nil
}

func (r *nodeRepo) Count(ctx context.Context) (int64, error) {
	return runCount(ctx, r.s.read, `MATCH (n:GraphNode) RETURN count(n) AS total`, nil, "count nodes failed")
}

// Delete refuses to remove a vertex that still has relationships; callers
// remove its edges first.
func (r *nodeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := runCount(ctx, r.s.write, `MATCH (n:GraphNode {id: $id}) DELETE n RETURN count(n) AS total`,
		map[string]any{"id": id.String()}, "delete node failed")
	if err != nil {
		return err
	}
	if n == 0 {
		return appErr.NotFound("Node not found")
	}
	return nil
}

func (r *nodeRepo) DeleteAll(ctx context.Context) (int64, error) {
	return runCount(ctx, r.s.write, `MATCH (n:GraphNode) DETACH DELETE n RETURN count(n) AS total`, nil, "clear nodes failed")
}

func (r *nodeRepo) UpdateFields(ctx context.Context, id uuid.UUID, patch models.NodePatch) (*models.Node, error) {
	var out models.Node
	err := r.s.Transaction(ctx, func(tx repository.Store) error {
		txRepo := tx.Nodes().(*nodeRepo)
		if err := txRepo.GetByID(ctx, id, &out); err != nil {
			return err
		}
		if err := patch.Apply(&out); err != nil {
			return err
		}
		out.UpdatedAt = time.Now().UTC()
		props, err := nodeProps(&out)
		if err != nil {
			return appErr.Wrap(err, appErr.CodeInvalid, "invalid node properties")
		}
		_, err = txRepo.s.write(ctx, func(t neo4j.ManagedTransaction) (any, error) {
			_, err := t.Run(ctx, `MATCH (n:GraphNode {id: $id}) SET n = $props`, map[string]any{"id": id.String(), "props": props})
			return nil, err
		})
		return wrapErr(err, "update node failed")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ExistAll ignores mode. Relationships cannot outlive their endpoints in
// Neo4j, so the row locks the SQL store needs have no counterpart here.
func (r *nodeRepo) ExistAll(ctx context.Context, mode repository.LockMode, ids ...uuid.UUID) (bool, error) {
	ids = repository.Unique(ids)
	if len(ids) == 0 {
		return true, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	found, err := runCount(ctx, r.s.read, `MATCH (n:GraphNode) WHERE n.id IN $ids RETURN count(DISTINCT n) AS total`,
		map[string]any{"ids": raw}, "lookup nodes failed")
	if err != nil {
		return false, err
	}
	return found == int64(len(ids)), nil
}

type runner func(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error)

// runCount runs a statement returning a single "total" column.
func runCount(ctx context.Context, run runner, cypher string, params map[string]any, failure string) (int64, error) {
	res, err := run(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		rec, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}
		return countFromRecord(rec, "total"), nil
	})
	if err != nil {
		return 0, wrapErr(err, failure)
	}
	return res.(int64), nil
}
