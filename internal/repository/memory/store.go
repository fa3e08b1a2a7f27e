// Package memory keeps the graph in process memory. Transactions work on a
// private copy of the state that replaces the shared state only on success,
// so a failed unit of work leaves nothing behind.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
)

var errReadOnly = errors.New("memory store: write inside a read-only snapshot")

type nodeRecord struct {
	seq  uint64
	node models.Node
}

type edgeRecord struct {
	seq  uint64
	edge models.Edge
}

type state struct {
	seq   uint64
	nodes map[uuid.UUID]nodeRecord
	edges map[uuid.UUID]edgeRecord
}

func newState() *state {
	return &state{
		nodes: map[uuid.UUID]nodeRecord{},
		edges: map[uuid.UUID]edgeRecord{},
	}
}

func (s *state) clone() *state {
	out := &state{
		seq:   s.seq,
		nodes: make(map[uuid.UUID]nodeRecord, len(s.nodes)),
		edges: make(map[uuid.UUID]edgeRecord, len(s.edges)),
	}
	for id, rec := range s.nodes {
		out.nodes[id] = nodeRecord{seq: rec.seq, node: rec.node.Clone()}
	}
	for id, rec := range s.edges {
		out.edges[id] = edgeRecord{seq: rec.seq, edge: rec.edge.Clone()}
	}
	return out
}

func (s *state) next() uint64 {
	s.seq++
	return s.seq
}

func (s *state) sortedNodes() []models.Node {
	recs := make([]nodeRecord, 0, len(s.nodes))
	for _, rec := range s.nodes {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]models.Node, len(recs))
	for i, rec := range recs {
		out[i] = rec.node.Clone()
	}
	return out
}

func (s *state) sortedEdges() []models.Edge {
	recs := make([]edgeRecord, 0, len(s.edges))
	for _, rec := range s.edges {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]models.Edge, len(recs))
	for i, rec := range recs {
		out[i] = rec.edge.Clone()
	}
	return out
}

// access runs a callback against some state with the right locking.
type access interface {
	read(fn func(*state) error) error
	write(fn func(*state) error) error
}

// Store is a process-local repository.Store.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{st: newState(), now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) read(fn func(*state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// write runs a single repository call. Every call validates before it
// mutates, so no rollback is needed here.
func (s *Store) write(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) Nodes() repository.NodeRepository { return &nodeRepo{db: s, now: s.now} }
func (s *Store) Edges() repository.EdgeRepository { return &edgeRepo{db: s, now: s.now} }

// Transaction holds the write lock for the whole unit of work and works on a
// copy that replaces the shared state only when fn succeeds.
func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(&txStore{st: next, now: s.now}); err != nil {
		return err
	}
	s.st = next
	return nil
}

func (s *Store) Snapshot(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.read(func(st *state) error {
		return fn(&txStore{st: st, now: s.now, readOnly: true})
	})
}

func (s *Store) Ping(ctx context.Context) error  { return ctx.Err() }
func (s *Store) Close(ctx context.Context) error { return nil }

// txStore is the view handed to Transaction and Snapshot callbacks. The
// enclosing Store already holds the lock.
type txStore struct {
	st       *state
	now      func() time.Time
	readOnly bool
}

func (t *txStore) read(fn func(*state) error) error { return fn(t.st) }

func (t *txStore) write(fn func(*state) error) error {
	if t.readOnly {
		return errReadOnly
	}
	return fn(t.st)
}

func (t *txStore) Nodes() repository.NodeRepository { return &nodeRepo{db: t, now: t.now} }
func (t *txStore) Edges() repository.EdgeRepository { return &edgeRepo{db: t, now: t.now} }

func (t *txStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if t.readOnly {
		return errReadOnly
	}
	return fn(t)
}

func (t *txStore) Snapshot(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(t)
}

func (t *txStore) Ping(ctx context.Context) error  { return ctx.Err() }
func (t *txStore) Close(ctx context.Context) error { return nil }

var (
	_ repository.Store = (*Store)(nil)
	_ repository.Store = (*txStore)(nil)
)
