package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

func TestNewNodeDefaults(t *testing.T) {
	n, err := NewNode(NodeInput{Label: "  React  "})
	require.NoError(t, err)

	assert.Equal(t, "React", n.Label)
	assert.Equal(t, DefaultNodeType, n.Type)
	assert.NotNil(t, n.Properties)
	assert.Empty(t, n.Properties)
	assert.Zero(t, n.X)
	assert.Zero(t, n.Y)
	assert.Nil(t, n.Fx)
	assert.Nil(t, n.Fy)
}

func TestNewNodeRequiresLabel(t *testing.T) {
	for _, label := range []string{"", "   ", "\t\n"} {
		_, err := NewNode(NodeInput{Label: label, Type: "concept"})
		require.Error(t, err)
		assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
		assert.Equal(t, "Label is required", appErr.MessageOf(err))
	}
}

func TestNodeTypeIsUnbounded(t *testing.T) {
	long := strings.Repeat("t", 200)
	n, err := NewNode(NodeInput{Label: "A", Type: long})
	require.NoError(t, err)
	assert.Equal(t, long, n.Type)

	longer := strings.Repeat("u", 300)
	require.NoError(t, NodePatch{Type: &longer}.Apply(n))
	assert.Equal(t, longer, n.Type)
}

func TestNodePatchAllowList(t *testing.T) {
	n, err := NewNode(NodeInput{Label: "Vite", Type: "build-tool", X: 100, Y: -50})
	require.NoError(t, err)

	var patch NodePatch
	require.NoError(t, json.Unmarshal([]byte(`{"label":" Vite 5 ","secret":true,"x":12.5,"fx":3}`), &patch))
	require.NoError(t, patch.Apply(n))

	assert.Equal(t, "Vite 5", n.Label)
	assert.Equal(t, "build-tool", n.Type)
	assert.Equal(t, 12.5, n.X)
	assert.Equal(t, -50.0, n.Y)
	require.NotNil(t, n.Fx)
	assert.Equal(t, 3.0, *n.Fx)
	assert.Nil(t, n.Fy)
	assert.NotContains(t, n.Properties, "secret")
}

func TestNodePatchNullClearsPin(t *testing.T) {
	n, err := NewNode(NodeInput{Label: "D3.js"})
	require.NoError(t, err)
	require.NoError(t, NodePatch{Fx: Float(1), Fy: Float(2)}.Apply(n))
	require.NotNil(t, n.Fx)

	var patch NodePatch
	require.NoError(t, json.Unmarshal([]byte(`{"fx":null}`), &patch))
	assert.True(t, patch.Fx.Set)
	assert.False(t, patch.Fy.Set)
	require.NoError(t, patch.Apply(n))

	assert.Nil(t, n.Fx)
	require.NotNil(t, n.Fy)
	assert.Equal(t, 2.0, *n.Fy)
}

func TestNodePatchRejectsEmptiedLabel(t *testing.T) {
	n, err := NewNode(NodeInput{Label: "Neo4j"})
	require.NoError(t, err)

	blank := "  "
	err = NodePatch{Label: &blank}.Apply(n)
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestNodePatchIsEmpty(t *testing.T) {
	assert.True(t, NodePatch{}.IsEmpty())
	assert.False(t, NodePatch{Fy: Null()}.IsEmpty())
}

func TestNewEdge(t *testing.T) {
	src, dst := uuid.New(), uuid.New()

	e, err := NewEdge(EdgeInput{Source: src.String(), Target: dst.String(), Label: " uses "})
	require.NoError(t, err)
	assert.Equal(t, src, e.Source)
	assert.Equal(t, dst, e.Target)
	assert.Equal(t, "uses", e.Label)
	assert.True(t, e.Directed)
	assert.NotNil(t, e.Properties)
	assert.True(t, e.Touches(src))
	assert.False(t, e.Touches(uuid.New()))

	undirected := false
	e, err = NewEdge(EdgeInput{Source: src.String(), Target: dst.String(), Directed: &undirected})
	require.NoError(t, err)
	assert.False(t, e.Directed)
}

func TestNewEdgeValidation(t *testing.T) {
	cases := []struct {
		name string
		in   EdgeInput
		msg  string
	}{
		{"missing source", EdgeInput{Target: uuid.NewString()}, "Source and target nodes are required"},
		{"missing target", EdgeInput{Source: uuid.NewString()}, "Source and target nodes are required"},
		{"malformed source", EdgeInput{Source: "abc", Target: uuid.NewString()}, "Invalid node IDs"},
		{"braced target", EdgeInput{Source: uuid.NewString(), Target: "{" + uuid.NewString() + "}"}, "Invalid node IDs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEdge(tc.in)
			require.Error(t, err)
			assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
			assert.Equal(t, tc.msg, appErr.MessageOf(err))
		})
	}
}

func TestEdgePatchKeepsEndpoints(t *testing.T) {
	e, err := NewEdge(EdgeInput{Source: uuid.NewString(), Target: uuid.NewString()})
	require.NoError(t, err)
	src := e.Source

	var patch EdgePatch
	require.NoError(t, json.Unmarshal([]byte(`{"source":"`+uuid.NewString()+`","directed":false,"properties":{"weight":2}}`), &patch))
	require.NoError(t, patch.Apply(e))

	assert.Equal(t, src, e.Source)
	assert.False(t, e.Directed)
	assert.Equal(t, 2.0, e.Properties["weight"])
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	got, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, raw := range []string{"", "123", "urn:uuid:" + id.String(), "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"} {
		_, err := ParseID(raw)
		assert.True(t, IsInvalidID(err), raw)
	}
}

func TestCloneIsDeep(t *testing.T) {
	n, err := NewNode(NodeInput{Label: "MongoDB", Properties: map[string]any{"tags": []any{"db"}}})
	require.NoError(t, err)
	require.NoError(t, NodePatch{Fx: Float(5)}.Apply(n))

	c := n.Clone()
	c.Properties["category"] = "Database"
	*c.Fx = 9

	assert.NotContains(t, n.Properties, "category")
	assert.Equal(t, 5.0, *n.Fx)
}
