package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coregraph "github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/registry"
)

func intPtr(v int) *int { return &v }

func pipelineGraph(t *testing.T) *coregraph.Graph {
	t.Helper()
	g := coregraph.New()
	require.NoError(t, g.AddNode(&coregraph.Node{
		ID: "src", Kind: coregraph.KindSource, Label: "API Source",
		Outputs: []coregraph.Port{{ID: "out"}},
	}))
	require.NoError(t, g.AddNode(&coregraph.Node{
		ID: "xform", Kind: coregraph.KindTransformation, Label: "Mapper",
		Inputs:  []coregraph.Port{{ID: "in"}},
		Outputs: []coregraph.Port{{ID: "out"}},
	}))
	require.NoError(t, g.AddNode(&coregraph.Node{
		ID: "dst", Kind: coregraph.KindDestination, Label: "Warehouse",
		Inputs: []coregraph.Port{{ID: "in"}},
	}))
	return g
}

func TestValidateConnection_OK(t *testing.T) {
	g := pipelineGraph(t)
	reg := registry.Default()

	res := ValidateConnection(&coregraph.Edge{
		ID: "e1", Source: "src", SourceHandle: "out", Target: "dst", TargetHandle: "in",
	}, g, reg)

	assert.True(t, res.IsValid)
	assert.False(t, res.HasError)
	assert.False(t, res.HasWarning)
}

func TestValidateConnection_MissingEndpoint(t *testing.T) {
	g := pipelineGraph(t)
	reg := registry.Default()

	res := ValidateConnection(&coregraph.Edge{ID: "e1", Source: "ghost", Target: "dst"}, g, reg)

	assert.True(t, res.HasError)
	assert.Equal(t, "source or target node not found", res.Message)
}

func TestValidateConnection_KindChecks(t *testing.T) {
	g := pipelineGraph(t)
	require.NoError(t, g.AddNode(&coregraph.Node{ID: "mystery", Kind: "webhook"}))
	reg := registry.Default()

	t.Run("unregistered kind", func(t *testing.T) {
		res := ValidateConnection(&coregraph.Edge{ID: "e1", Source: "mystery", Target: "dst"}, g, reg)
		assert.True(t, res.HasError)
		assert.Contains(t, res.Message, "not registered")
	})

	t.Run("destination cannot originate", func(t *testing.T) {
		res := ValidateConnection(&coregraph.Edge{ID: "e1", Source: "dst", Target: "xform"}, g, reg)
		assert.True(t, res.HasError)
		assert.Contains(t, res.Message, "cannot originate")
	})

	t.Run("source cannot accept", func(t *testing.T) {
		res := ValidateConnection(&coregraph.Edge{ID: "e1", Source: "xform", Target: "src"}, g, reg)
		assert.True(t, res.HasError)
		assert.Contains(t, res.Message, "cannot accept")
	})
}

func TestValidateConnection_TypeMismatch(t *testing.T) {
	g := coregraph.New()
	require.NoError(t, g.AddNode(&coregraph.Node{
		ID: "src", Kind: coregraph.KindSource,
		Outputs: []coregraph.Port{{ID: "out", DataType: "record"}},
	}))
	require.NoError(t, g.AddNode(&coregraph.Node{
		ID: "dst", Kind: coregraph.KindDestination,
		Inputs: []coregraph.Port{{ID: "in", DataType: "file"}},
	}))
	reg := registry.Default()

	res := ValidateConnection(&coregraph.Edge{
		ID: "e1", Source: "src", SourceHandle: "out", Target: "dst", TargetHandle: "in",
	}, g, reg)

	// A type mismatch is a hard error, never a warning.
	assert.True(t, res.HasError)
	assert.False(t, res.HasWarning)
	assert.Contains(t, res.Message, `"record"`)
	assert.Contains(t, res.Message, `"file"`)
}

func TestValidateConnection_InputLimitWarning(t *testing.T) {
	g := pipelineGraph(t)
	require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e1", Source: "src", Target: "dst"}))

	reg := registry.Default()
	reg.Override(coregraph.KindDestination, registry.KindSpec{
		Inputs:              []string{"in"},
		MaxInputConnections: intPtr(1),
	})

	second := &coregraph.Edge{ID: "e2", Source: "xform", Target: "dst"}
	res := ValidateConnection(second, g, reg)

	assert.True(t, res.HasWarning)
	assert.False(t, res.HasError, "limit breach is a warning, not an error")
	assert.Contains(t, res.Message, "incoming connections")

	// Re-validating the accepted first edge must not warn against itself.
	again := ValidateConnection(g.Edge("e1"), g, reg)
	assert.False(t, again.HasWarning)
}

func TestValidateConnection_OutputLimitWarning(t *testing.T) {
	g := pipelineGraph(t)
	require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e1", Source: "src", Target: "xform"}))

	reg := registry.Default()
	reg.Override(coregraph.KindSource, registry.KindSpec{
		Outputs:              []string{"out"},
		MaxOutputConnections: intPtr(1),
	})

	res := ValidateConnection(&coregraph.Edge{ID: "e2", Source: "src", Target: "dst"}, g, reg)

	assert.True(t, res.HasWarning)
	assert.False(t, res.HasError)
	assert.Contains(t, res.Message, "outgoing connections")
}

func TestValidateConnection_CycleError(t *testing.T) {
	g := pipelineGraph(t)
	reg := registry.Default()
	require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e1", Source: "src", Target: "xform"}))

	// Closing xform -> src would form src -> xform -> src.
	res := ValidateConnection(&coregraph.Edge{ID: "e2", Source: "xform", Target: "src"}, g, reg)
	assert.True(t, res.HasError)
	assert.Contains(t, res.Message, "cycle")
}

func TestValidateConnection_SelfLoopIsCycle(t *testing.T) {
	g := pipelineGraph(t)
	reg := registry.Default()

	res := ValidateConnection(&coregraph.Edge{ID: "e1", Source: "xform", Target: "xform"}, g, reg)
	assert.True(t, res.HasError)
	assert.Contains(t, res.Message, "cycle")
}

func TestValidateConnection_CycleOutranksLimitWarning(t *testing.T) {
	g := coregraph.New()
	require.NoError(t, g.AddNode(&coregraph.Node{ID: "a", Kind: coregraph.KindTransformation}))
	require.NoError(t, g.AddNode(&coregraph.Node{ID: "b", Kind: coregraph.KindTransformation}))
	require.NoError(t, g.AddNode(&coregraph.Node{ID: "c", Kind: coregraph.KindTransformation}))
	require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e1", Source: "a", Target: "b"}))
	require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e2", Source: "c", Target: "a"}))

	reg := registry.Default()
	reg.Override(coregraph.KindTransformation, registry.KindSpec{
		Inputs:              []string{"in"},
		Outputs:             []string{"out"},
		MaxInputConnections: intPtr(1),
	})

	// b -> a both breaches a's input limit (c already feeds it) and
	// closes the cycle a -> b -> a. The error must win.
	res := ValidateConnection(&coregraph.Edge{ID: "e3", Source: "b", Target: "a"}, g, reg)
	assert.True(t, res.HasError, "a cycle must never be downgraded to a warning")
	assert.Contains(t, res.Message, "cycle")
}

// Accepting any edge that validated without error must never produce
// a cyclic graph.
func TestValidateConnection_NoErrorImpliesAcyclic(t *testing.T) {
	g := pipelineGraph(t)
	reg := registry.Default()

	candidates := []*coregraph.Edge{
		{ID: "c1", Source: "src", Target: "xform"},
		{ID: "c2", Source: "xform", Target: "dst"},
		{ID: "c3", Source: "xform", Target: "src"},
		{ID: "c4", Source: "src", Target: "dst"},
		{ID: "c5", Source: "dst", Target: "src"},
	}
	for _, c := range candidates {
		res := ValidateConnection(c, g, reg)
		if res.HasError {
			continue
		}
		require.NoError(t, g.AddEdge(c))
		assert.False(t, HasCycle(g), "edge %s was accepted but closed a cycle", c.ID)
	}
}
