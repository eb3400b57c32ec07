// Package graph provides the core flow graph domain entities
// following Clean Architecture principles with zero external dependencies.
package graph

// Graph is the in-memory representation of an integration flow:
// nodes keyed by ID plus the ordered edge list.
// PRINCIPLES:
// - KISS: Simple struct, no complex hierarchies
// - SRP: Only responsible for graph structure, not validation policy
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []*Edge          `json:"edges"`
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{Nodes: make(map[string]*Node)}
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	return g.Nodes[id]
}

// Edge returns the edge with the given ID, or nil.
func (g *Graph) Edge(id string) *Edge {
	for _, e := range g.Edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// AddNode adds a node to the graph. Structural guards only; policy
// checks (registry, validation) live outside the entity.
func (g *Graph) AddNode(node *Node) error {
	if node == nil {
		return ErrNilNode
	}
	if err := node.Validate(); err != nil {
		return err
	}
	if g.Nodes == nil {
		g.Nodes = make(map[string]*Node)
	}
	if _, exists := g.Nodes[node.ID]; exists {
		return ErrDuplicateNode
	}
	g.Nodes[node.ID] = node
	return nil
}

// AddEdge appends an edge after checking both endpoints exist.
func (g *Graph) AddEdge(edge *Edge) error {
	if edge == nil {
		return ErrNilEdge
	}
	if err := edge.Validate(); err != nil {
		return err
	}
	if _, exists := g.Nodes[edge.Source]; !exists {
		return ErrSourceNodeNotFound
	}
	if _, exists := g.Nodes[edge.Target]; !exists {
		return ErrTargetNodeNotFound
	}
	for _, e := range g.Edges {
		if e.ID == edge.ID {
			return ErrDuplicateEdge
		}
	}
	g.Edges = append(g.Edges, edge)
	return nil
}

// RemoveEdge deletes the edge with the given ID.
func (g *Graph) RemoveEdge(id string) error {
	for i, e := range g.Edges {
		if e.ID == id {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return nil
		}
	}
	return ErrEdgeNotFound
}

// RemoveNode deletes a node and cascades removal of every edge
// touching it.
func (g *Graph) RemoveNode(id string) error {
	if _, exists := g.Nodes[id]; !exists {
		return ErrNodeNotFound
	}
	delete(g.Nodes, id)
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	return nil
}

// EdgesFrom returns all edges whose source is the given node.
func (g *Graph) EdgesFrom(nodeID string) []*Edge {
	var out []*Edge
	for _, e := range g.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTo returns all edges whose target is the given node.
func (g *Graph) EdgesTo(nodeID string) []*Edge {
	var out []*Edge
	for _, e := range g.Edges {
		if e.Target == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// OutDegree counts edges leaving a node, excluding the edge with
// skipEdgeID (used when re-validating a connection in place).
func (g *Graph) OutDegree(nodeID, skipEdgeID string) int {
	count := 0
	for _, e := range g.Edges {
		if e.Source == nodeID && e.ID != skipEdgeID {
			count++
		}
	}
	return count
}

// InDegree counts edges entering a node, excluding skipEdgeID.
func (g *Graph) InDegree(nodeID, skipEdgeID string) int {
	count := 0
	for _, e := range g.Edges {
		if e.Target == nodeID && e.ID != skipEdgeID {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the graph, suitable for history
// snapshots: later edits to the original never leak into the copy.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{Nodes: make(map[string]*Node, len(g.Nodes))}
	for id, n := range g.Nodes {
		out.Nodes[id] = n.Clone()
	}
	if g.Edges != nil {
		out.Edges = make([]*Edge, len(g.Edges))
		for i, e := range g.Edges {
			out.Edges[i] = e.Clone()
		}
	}
	return out
}
