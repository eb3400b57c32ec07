package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coregraph "github.com/flowcanvas/flowcanvas/internal/core/graph"
)

func chainGraph(t *testing.T, ids ...string) *coregraph.Graph {
	t.Helper()
	g := coregraph.New()
	for _, id := range ids {
		require.NoError(t, g.AddNode(&coregraph.Node{ID: id, Kind: coregraph.KindTransformation}))
	}
	for i := 0; i < len(ids)-1; i++ {
		require.NoError(t, g.AddEdge(&coregraph.Edge{
			ID: fmt.Sprintf("e%d", i), Source: ids[i], Target: ids[i+1],
		}))
	}
	return g
}

func TestHasCycle(t *testing.T) {
	t.Run("chain is acyclic", func(t *testing.T) {
		assert.False(t, HasCycle(chainGraph(t, "a", "b", "c", "d")))
	})

	t.Run("back edge closes a cycle", func(t *testing.T) {
		g := chainGraph(t, "a", "b", "c")
		require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "back", Source: "c", Target: "a"}))
		assert.True(t, HasCycle(g))
	})

	t.Run("self loop is a 1-node cycle", func(t *testing.T) {
		g := chainGraph(t, "a")
		g.Edges = append(g.Edges, &coregraph.Edge{ID: "loop", Source: "a", Target: "a"})
		assert.True(t, HasCycle(g))
	})

	t.Run("disconnected cyclic component is found", func(t *testing.T) {
		g := chainGraph(t, "a", "b")
		require.NoError(t, g.AddNode(&coregraph.Node{ID: "x", Kind: coregraph.KindFilter}))
		require.NoError(t, g.AddNode(&coregraph.Node{ID: "y", Kind: coregraph.KindFilter}))
		require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e1", Source: "x", Target: "y"}))
		require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e2", Source: "y", Target: "x"}))
		assert.True(t, HasCycle(g))
	})
}

// Renaming every node through a consistent bijection must not change
// the detector's outcome.
func TestHasCycle_InvariantUnderRelabeling(t *testing.T) {
	build := func(rename func(string) string, cyclic bool) *coregraph.Graph {
		g := coregraph.New()
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, g.AddNode(&coregraph.Node{ID: rename(id), Kind: coregraph.KindFilter}))
		}
		require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e1", Source: rename("a"), Target: rename("b")}))
		require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e2", Source: rename("b"), Target: rename("c")}))
		if cyclic {
			require.NoError(t, g.AddEdge(&coregraph.Edge{ID: "e3", Source: rename("c"), Target: rename("a")}))
		}
		return g
	}

	identity := func(s string) string { return s }
	relabel := func(s string) string { return "node-" + s + "-renamed" }

	for _, cyclic := range []bool{false, true} {
		assert.Equal(t,
			HasCycle(build(identity, cyclic)),
			HasCycle(build(relabel, cyclic)),
			"cyclic=%v", cyclic)
	}
}

func TestWouldCycle_ReplacesSameID(t *testing.T) {
	g := chainGraph(t, "a", "b", "c")

	// Re-routing edge e0 (a->b) to a->c must consider the graph
	// without the old e0, not with both.
	moved := &coregraph.Edge{ID: "e0", Source: "a", Target: "c"}
	assert.False(t, wouldCycle(moved, g))

	// Re-routing e0 to c->a also replaces the old a->b, leaving no
	// path back from a to c: still acyclic.
	assert.False(t, wouldCycle(&coregraph.Edge{ID: "e0", Source: "c", Target: "a"}, g))

	// A genuinely closing candidate with a fresh ID is detected.
	fresh := &coregraph.Edge{ID: "e9", Source: "c", Target: "a"}
	assert.True(t, wouldCycle(fresh, g))
}
