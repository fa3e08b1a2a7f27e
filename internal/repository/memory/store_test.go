package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

func mustNode(t *testing.T, s repository.Store, label, typ string) *models.Node {
	t.Helper()
	n, err := models.NewNode(models.NodeInput{Label: label, Type: typ})
	require.NoError(t, err)
	require.NoError(t, s.Nodes().Create(context.Background(), n))
	return n
}

func mustEdge(t *testing.T, s repository.Store, from, to uuid.UUID) *models.Edge {
	t.Helper()
	e, err := models.NewEdge(models.EdgeInput{Source: from.String(), Target: to.String(), Label: "uses"})
	require.NoError(t, err)
	require.NoError(t, s.Edges().Create(context.Background(), e))
	return e
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	s := New()
	n := mustNode(t, s, "React", "frontend-framework")

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	var got models.Node
	require.NoError(t, s.Nodes().GetByID(context.Background(), n.ID, &got))
	assert.Equal(t, "React", got.Label)
}

func TestCreateRejectsInvalidNode(t *testing.T) {
	s := New()
	err := s.Nodes().Create(context.Background(), &models.Node{Type: "concept"})
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	count, err := s.Nodes().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s := New()
	labels := []string{"React", "TypeScript", "Node.js", "Express"}
	for _, l := range labels {
		mustNode(t, s, l, "default")
	}

	nodes, err := s.Nodes().List(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, len(labels))
	for i, n := range nodes {
		assert.Equal(t, labels[i], n.Label)
	}
}

func TestReturnedNodesAreCopies(t *testing.T) {
	s := New()
	n := mustNode(t, s, "Vite", "build-tool")
	n.Label = "mutated"

	var got models.Node
	require.NoError(t, s.Nodes().GetByID(context.Background(), n.ID, &got))
	assert.Equal(t, "Vite", got.Label)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := mustNode(t, s, "A", "default")
	b := mustNode(t, s, "B", "default")
	e := mustEdge(t, s, a.ID, b.ID)

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx repository.Store) error {
		removed, err := tx.Edges().DeleteByNode(ctx, a.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1, removed)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var got models.Edge
	require.NoError(t, s.Edges().GetByID(ctx, e.ID, &got))
}

func TestTransactionRollsBackWhenNodeMissing(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := mustNode(t, s, "A", "default")
	ghost := uuid.New()
	dangling := mustEdge(t, s, a.ID, ghost)

	err := s.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Edges().DeleteByNode(ctx, ghost); err != nil {
			return err
		}
		return tx.Nodes().Delete(ctx, ghost)
	})
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	var got models.Edge
	require.NoError(t, s.Edges().GetByID(ctx, dangling.ID, &got), "edge removed inside a failed transaction must come back")
}

func TestTransactionCommits(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := mustNode(t, s, "A", "default")
	b := mustNode(t, s, "B", "default")
	mustEdge(t, s, a.ID, b.ID)
	mustEdge(t, s, b.ID, a.ID)

	err := s.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Edges().DeleteByNode(ctx, a.ID); err != nil {
			return err
		}
		return tx.Nodes().Delete(ctx, a.ID)
	})
	require.NoError(t, err)

	edges, err := s.Edges().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, edges)
	ok, err := s.Nodes().ExistAll(ctx, repository.LockNone, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSnapshotIsReadOnly(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustNode(t, s, "A", "default")

	err := s.Snapshot(ctx, func(tx repository.Store) error {
		nodes, err := tx.Nodes().List(ctx)
		require.NoError(t, err)
		assert.Len(t, nodes, 1)
		_, err = tx.Nodes().DeleteAll(ctx)
		return err
	})
	require.ErrorIs(t, err, errReadOnly)

	count, err := s.Nodes().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSearchMatchesLabelOrTypeCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustNode(t, s, "React", "frontend-framework")
	mustNode(t, s, "TypeScript", "programming-language")
	mustNode(t, s, "Neo4j", "graph-database")

	got, err := s.Nodes().Search(ctx, "react", repository.SearchLimit)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "React", got[0].Label)

	got, err = s.Nodes().Search(ctx, "DATABASE", repository.SearchLimit)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Neo4j", got[0].Label)
}

func TestSearchHonoursLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 0; i < 30; i++ {
		mustNode(t, s, "node", "default")
	}
	got, err := s.Nodes().Search(ctx, "node", repository.SearchLimit)
	require.NoError(t, err)
	assert.Len(t, got, repository.SearchLimit)
}

func TestUpdateFields(t *testing.T) {
	ctx := context.Background()
	s := New()
	n := mustNode(t, s, "MongoDB", "database")

	label := "MongoDB 7"
	got, err := s.Nodes().UpdateFields(ctx, n.ID, models.NodePatch{Label: &label, Fx: models.Float(10)})
	require.NoError(t, err)
	assert.Equal(t, "MongoDB 7", got.Label)
	assert.Equal(t, "database", got.Type)
	require.NotNil(t, got.Fx)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	blank := ""
	_, err = s.Nodes().UpdateFields(ctx, n.ID, models.NodePatch{Label: &blank})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	var stored models.Node
	require.NoError(t, s.Nodes().GetByID(ctx, n.ID, &stored))
	assert.Equal(t, "MongoDB 7", stored.Label)

	_, err = s.Nodes().UpdateFields(ctx, uuid.New(), models.NodePatch{Label: &label})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestExistAll(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := mustNode(t, s, "A", "default")

	ok, err := s.Nodes().ExistAll(ctx, repository.LockShare, a.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Nodes().ExistAll(ctx, repository.LockShare, a.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
