package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

type nodeRepo struct {
	db  access
	now func() time.Time
}

func (r *nodeRepo) Create(ctx context.Context, n *models.Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return r.db.write(func(st *state) error {
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		if _, ok := st.nodes[n.ID]; ok {
			return appErr.Internal(nil, "duplicate node id")
		}
		ts := r.now()
		n.CreatedAt, n.UpdatedAt = ts, ts
		st.nodes[n.ID] = nodeRecord{seq: st.next(), node: n.Clone()}
		return nil
	})
}

func (r *nodeRepo) GetByID(ctx context.Context, id uuid.UUID, dest *models.Node) error {
	return r.db.read(func(st *state) error {
		rec, ok := st.nodes[id]
		if !ok {
			return appErr.NotFound("Node not found")
		}
		*dest = rec.node.Clone()
		return nil
	})
}

func (r *nodeRepo) List(ctx context.Context) ([]models.Node, error) {
	var out []models.Node
	err := r.db.read(func(st *state) error {
		out = st.sortedNodes()
		return nil
	})
	return out, err
}

func (r *nodeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.read(func(st *state) error {
		n = int64(len(st.nodes))
		return nil
	})
	return n, err
}

func (r *nodeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.nodes[id]; !ok {
			return appErr.NotFound("Node not found")
		}
		delete(st.nodes, id)
		return nil
	})
}

func (r *nodeRepo) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.write(func(st *state) error {
		n = int64(len(st.nodes))
		st.nodes = map[uuid.UUID]nodeRecord{}
		return nil
	})
	return n, err
}

func (r *nodeRepo) UpdateFields(ctx context.Context, id uuid.UUID, patch models.NodePatch) (*models.Node, error) {
	var out models.Node
	err := r.db.write(func(st *state) error {
		rec, ok := st.nodes[id]
		if !ok {
			return appErr.NotFound("Node not found")
		}
		n := rec.node.Clone()
		if err := patch.Apply(&n); err != nil {
			return err
		}
		n.UpdatedAt = r.now()
		st.nodes[id] = nodeRecord{seq: rec.seq, node: n}
		out = n.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *nodeRepo) Search(ctx context.Context, query string, limit int) ([]models.Node, error) {
	needle := strings.ToLower(query)
	out := []models.Node{}
	err := r.db.read(func(st *state) error {
		for _, n := range st.sortedNodes() {
			if limit > 0 && len(out) >= limit {
				break
			}
			if strings.Contains(strings.ToLower(n.Label), needle) || strings.Contains(strings.ToLower(n.Type), needle) {
				out = append(out, n)
			}
		}
		return nil
	})
	return out, err
}

// ExistAll ignores mode: the store lock already serialises writers.
func (r *nodeRepo) ExistAll(ctx context.Context, mode repository.LockMode, ids ...uuid.UUID) (bool, error) {
	all := true
	err := r.db.read(func(st *state) error {
		for _, id := range ids {
			if _, ok := st.nodes[id]; !ok {
				all = false
				return nil
			}
		}
		return nil
	})
	return all, err
}
