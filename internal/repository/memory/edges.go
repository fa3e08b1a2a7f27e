package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

type edgeRepo struct {
	db  access
	now func() time.Time
}

func (r *edgeRepo) Create(ctx context.Context, e *models.Edge) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return r.db.write(func(st *state) error {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if _, ok := st.edges[e.ID]; ok {
			return appErr.Internal(nil, "duplicate edge id")
		}
		ts := r.now()
		e.CreatedAt, e.UpdatedAt = ts, ts
		st.edges[e.ID] = edgeRecord{seq: st.next(), edge: e.Clone()}
		return nil
	})
}

func (r *edgeRepo) GetByID(ctx context.Context, id uuid.UUID, dest *models.Edge) error {
	return r.db.read(func(st *state) error {
		rec, ok := st.edges[id]
		if !ok {
			return appErr.NotFound("Edge not found")
		}
		*dest = rec.edge.Clone()
		return nil
	})
}

func (r *edgeRepo) List(ctx context.Context) ([]models.Edge, error) {
	var out []models.Edge
	err := r.db.read(func(st *state) error {
		out = st.sortedEdges()
		return nil
	})
	return out, err
}

func (r *edgeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.read(func(st *state) error {
		n = int64(len(st.edges))
		return nil
	})
	return n, err
}

func (r *edgeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.edges[id]; !ok {
			return appErr.NotFound("Edge not found")
		}
		delete(st.edges, id)
		return nil
	})
}

func (r *edgeRepo) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.write(func(st *state) error {
		n = int64(len(st.edges))
		st.edges = map[uuid.UUID]edgeRecord{}
		return nil
	})
	return n, err
}

func (r *edgeRepo) UpdateFields(ctx context.Context, id uuid.UUID, patch models.EdgePatch) (*models.Edge, error) {
	var out models.Edge
	err := r.db.write(func(st *state) error {
		rec, ok := st.edges[id]
		if !ok {
			return appErr.NotFound("Edge not found")
		}
		e := rec.edge.Clone()
		if err := patch.Apply(&e); err != nil {
			return err
		}
		e.UpdatedAt = r.now()
		st.edges[id] = edgeRecord{seq: rec.seq, edge: e}
		out = e.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *edgeRepo) DeleteByNode(ctx context.Context, nodeID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.write(func(st *state) error {
		for id, rec := range st.edges {
			if rec.edge.Touches(nodeID) {
				delete(st.edges, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
