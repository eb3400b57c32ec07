package validation

import (
	"sort"

	coregraph "github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/registry"
)

// ValidateFlow validates the whole graph. Unlike ValidateConnection
// nothing short-circuits: every check runs so the aggregate reports
// all problems at once. Only hard errors flip IsValid; warnings are
// advisory.
func ValidateFlow(g *coregraph.Graph, reg *registry.Registry) *FlowResult {
	result := newFlowResult()

	if countKind(g, coregraph.KindSource) == 0 {
		result.addError("flow has no source node")
	}
	if countKind(g, coregraph.KindDestination) == 0 {
		result.addError("flow has no destination node")
	}

	// Re-validate every edge independently. Dangling endpoint
	// references degrade to a per-edge error here, never a crash.
	for _, e := range g.Edges {
		if res := ValidateConnection(e, g, reg); res.HasError || res.HasWarning {
			result.mergeEdge(e.ID, res)
		}
	}

	// Node order is fixed by ID so repeated runs report warnings in
	// the same order.
	for _, id := range sortedNodeIDs(g) {
		n := g.Nodes[id]
		switch n.Kind {
		case coregraph.KindSource:
			if g.OutDegree(id, "") == 0 {
				result.mergeNode(id, Warningf("source %q is not connected to any destination", label(n)))
			}
		case coregraph.KindDestination:
			if g.InDegree(id, "") == 0 {
				result.mergeNode(id, Warningf("destination %q has no incoming connections", label(n)))
			}
		}
	}

	for _, id := range unreachable(g) {
		result.mergeNode(id, Warningf("node %q is unreachable from any source", label(g.Node(id))))
	}

	return result
}

func countKind(g *coregraph.Graph, kind coregraph.NodeKind) int {
	count := 0
	for _, n := range g.Nodes {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

func label(n *coregraph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// unreachable returns the IDs of non-source nodes that forward
// propagation from the set of all source nodes never reaches.
// Worklist fixed point over the edge list; fine at editor scale.
func unreachable(g *coregraph.Graph) []string {
	reached := make(map[string]bool, len(g.Nodes))
	for id, n := range g.Nodes {
		if n.Kind == coregraph.KindSource {
			reached[id] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for _, e := range g.Edges {
			if reached[e.Source] && !reached[e.Target] {
				reached[e.Target] = true
				changed = true
			}
		}
	}
	var out []string
	for _, id := range sortedNodeIDs(g) {
		if !reached[id] {
			out = append(out, id)
		}
	}
	return out
}

func sortedNodeIDs(g *coregraph.Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
