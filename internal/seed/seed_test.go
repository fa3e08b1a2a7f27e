package seed

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/models"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/repository/memory"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

func TestRunTechStack(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	sum, err := Run(ctx, store, TechStackNodes, TechStackEdges)
	require.NoError(t, err)
	assert.EqualValues(t, 13, sum.Nodes)
	assert.EqualValues(t, 15, sum.Edges)
	assert.Zero(t, sum.Skipped)

	got, err := store.Nodes().Search(ctx, "graph", repository.SearchLimit)
	require.NoError(t, err)
	assert.Len(t, got, 3) // Force Graph, Graph Database, Neo4j (graph-database)

	edges, err := store.Edges().List(ctx)
	require.NoError(t, err)
	undirected := 0
	for _, e := range edges {
		if !e.Directed {
			undirected++
		}
	}
	assert.Equal(t, 1, undirected)
}

func TestRunReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := Run(ctx, store, TechStackNodes, TechStackEdges)
	require.NoError(t, err)

	sum, err := Run(ctx, store, TechStackNodes[:2], []EdgeSpec{
		{Source: "React", Target: "TypeScript", Label: "uses", Directed: true},
		{Source: "React", Target: "Vue", Label: "competes-with", Directed: false},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.Nodes)
	assert.EqualValues(t, 1, sum.Edges)
	assert.Equal(t, 1, sum.Skipped)
}

func TestRunRollsBackOnInvalidNode(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := Run(ctx, store, TechStackNodes, TechStackEdges)
	require.NoError(t, err)

	_, err = Run(ctx, store, []models.NodeInput{{Label: "ok"}, {Label: ""}}, nil)
	require.Error(t, err)

	count, err := store.Nodes().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 13, count)
}
