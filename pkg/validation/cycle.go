package validation

import (
	coregraph "github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// HasCycle detects any directed cycle using DFS with coloring.
// O(V+E). A self-loop counts as a 1-node cycle.
func HasCycle(g *coregraph.Graph) bool {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return hasCycleAdj(g, adj)
}

// wouldCycle reports whether accepting the candidate edge would close
// a cycle. The candidate replaces any existing edge with the same ID,
// so re-validating a connection while it is being dragged does not
// double-count it.
func wouldCycle(candidate *coregraph.Edge, g *coregraph.Graph) bool {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		if e.ID == candidate.ID {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	adj[candidate.Source] = append(adj[candidate.Source], candidate.Target)
	return hasCycleAdj(g, adj)
}

func hasCycleAdj(g *coregraph.Graph, adj map[string][]string) bool {
	const (
		white = 0 // unvisited
		gray  = 1 // visiting
		black = 2 // visited
	)
	color := make(map[string]int, len(g.Nodes))
	var dfs func(string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, v := range adj[u] {
			if color[v] == gray {
				return true // back-edge
			}
			if color[v] == white {
				if dfs(v) {
					return true
				}
			}
		}
		color[u] = black
		return false
	}
	for id := range g.Nodes {
		if color[id] == white {
			if dfs(id) {
				return true
			}
		}
	}
	return false
}
