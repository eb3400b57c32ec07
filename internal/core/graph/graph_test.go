package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		wantErr error
	}{
		{
			name:    "valid node",
			node:    &Node{ID: "n1", Kind: KindSource},
			wantErr: nil,
		},
		{
			name:    "missing ID",
			node:    &Node{Kind: KindSource},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "missing kind",
			node:    &Node{ID: "n1"},
			wantErr: ErrInvalidNodeKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNode_PortTypes(t *testing.T) {
	n := &Node{
		ID:      "n1",
		Kind:    KindTransformation,
		Inputs:  []Port{{ID: "in", DataType: "record"}},
		Outputs: []Port{{ID: "out"}},
	}

	assert.Equal(t, "record", n.InputType("in"))
	// Untyped and undeclared ports both resolve to the wildcard.
	assert.Equal(t, DataTypeAny, n.OutputType("out"))
	assert.Equal(t, DataTypeAny, n.InputType("missing"))
}

func TestGraph_AddNode(t *testing.T) {
	g := New()

	t.Run("add valid node", func(t *testing.T) {
		node := &Node{ID: "n1", Kind: KindSource}
		require.NoError(t, g.AddNode(node))
		assert.Equal(t, node, g.Node("n1"))
	})

	t.Run("add nil node", func(t *testing.T) {
		assert.ErrorIs(t, g.AddNode(nil), ErrNilNode)
	})

	t.Run("add duplicate node", func(t *testing.T) {
		assert.ErrorIs(t, g.AddNode(&Node{ID: "n1", Kind: KindFilter}), ErrDuplicateNode)
	})
}

func TestGraph_AddEdge(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode(&Node{ID: "n1", Kind: KindSource}))
	require.NoError(t, g.AddNode(&Node{ID: "n2", Kind: KindDestination}))

	t.Run("add valid edge", func(t *testing.T) {
		edge := &Edge{ID: "e1", Source: "n1", Target: "n2"}
		require.NoError(t, g.AddEdge(edge))
		assert.Equal(t, edge, g.Edge("e1"))
		assert.Equal(t, ConnectionData, edge.Data.ConnectionType)
	})

	t.Run("missing source node", func(t *testing.T) {
		err := g.AddEdge(&Edge{ID: "e2", Source: "missing", Target: "n2"})
		assert.ErrorIs(t, err, ErrSourceNodeNotFound)
	})

	t.Run("missing target node", func(t *testing.T) {
		err := g.AddEdge(&Edge{ID: "e2", Source: "n1", Target: "missing"})
		assert.ErrorIs(t, err, ErrTargetNodeNotFound)
	})

	t.Run("duplicate edge ID", func(t *testing.T) {
		err := g.AddEdge(&Edge{ID: "e1", Source: "n1", Target: "n2"})
		assert.ErrorIs(t, err, ErrDuplicateEdge)
	})
}

func TestGraph_RemoveNode_CascadesEdges(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode(&Node{ID: "src", Kind: KindSource}))
	require.NoError(t, g.AddNode(&Node{ID: "mid", Kind: KindTransformation}))
	require.NoError(t, g.AddNode(&Node{ID: "dst", Kind: KindDestination}))
	require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "src", Target: "mid"}))
	require.NoError(t, g.AddEdge(&Edge{ID: "e2", Source: "mid", Target: "dst"}))

	require.NoError(t, g.RemoveNode("mid"))

	assert.Nil(t, g.Node("mid"))
	assert.Empty(t, g.Edges, "both edges touched the removed node")
	assert.ErrorIs(t, g.RemoveNode("mid"), ErrNodeNotFound)
}

func TestGraph_Degrees(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode(&Node{ID: "a", Kind: KindSource}))
	require.NoError(t, g.AddNode(&Node{ID: "b", Kind: KindDestination}))
	require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "a", Target: "b"}))
	require.NoError(t, g.AddEdge(&Edge{ID: "e2", Source: "a", Target: "b"}))

	assert.Equal(t, 2, g.OutDegree("a", ""))
	assert.Equal(t, 1, g.OutDegree("a", "e1"), "skipped edge is excluded")
	assert.Equal(t, 2, g.InDegree("b", ""))
	assert.Len(t, g.EdgesFrom("a"), 2)
	assert.Len(t, g.EdgesTo("b"), 2)
	assert.Empty(t, g.EdgesTo("a"))
}

func TestGraph_Clone_IsDeep(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode(&Node{
		ID:     "n1",
		Kind:   KindSource,
		Config: map[string]interface{}{"endpoint": "s3://bucket"},
	}))
	require.NoError(t, g.AddNode(&Node{ID: "n2", Kind: KindDestination}))
	require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "n1", Target: "n2"}))

	clone := g.Clone()

	// Mutating the original must not leak into the clone.
	g.Node("n1").Config["endpoint"] = "changed"
	g.Edge("e1").Data.Priority = 9
	require.NoError(t, g.RemoveNode("n2"))

	assert.Equal(t, "s3://bucket", clone.Node("n1").Config["endpoint"])
	assert.Equal(t, 0, clone.Edge("e1").Data.Priority)
	assert.NotNil(t, clone.Node("n2"))
}

func TestNode_Clone_DeepCopiesNestedConfig(t *testing.T) {
	n := &Node{
		ID:   "n1",
		Kind: KindSource,
		Config: map[string]interface{}{
			"auth": map[string]interface{}{"scheme": "basic"},
			"cols": []interface{}{"id", "name"},
		},
	}

	clone := n.Clone()

	n.Config["auth"].(map[string]interface{})["scheme"] = "oauth"
	n.Config["cols"].([]interface{})[0] = "uuid"

	assert.Equal(t, "basic", clone.Config["auth"].(map[string]interface{})["scheme"])
	assert.Equal(t, "id", clone.Config["cols"].([]interface{})[0])
}
