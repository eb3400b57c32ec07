// Package document defines the external file shape of a flow graph
// (JSON or YAML) and validates it before it is allowed anywhere near
// the engine. Files come from disk or an API and cannot be trusted to
// satisfy the entity invariants the editor maintains.
package document

import (
	"sort"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// Document is the serialized form of a flow graph.
type Document struct {
	Name  string    `json:"name" yaml:"name" validate:"required,min=1,max=200"`
	Nodes []NodeDoc `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges []EdgeDoc `json:"edges" yaml:"edges" validate:"dive"`
}

// NodeDoc is the serialized form of a node.
type NodeDoc struct {
	ID       string                 `json:"id" yaml:"id" validate:"required,element_id"`
	Kind     string                 `json:"kind" yaml:"kind" validate:"required,oneof=source destination transformation filter"`
	Label    string                 `json:"label,omitempty" yaml:"label,omitempty" validate:"max=200"`
	Position graph.Position         `json:"position" yaml:"position"`
	Config   map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`
	Inputs   []PortDoc              `json:"inputs,omitempty" yaml:"inputs,omitempty" validate:"dive"`
	Outputs  []PortDoc              `json:"outputs,omitempty" yaml:"outputs,omitempty" validate:"dive"`
}

// PortDoc is the serialized form of a port.
type PortDoc struct {
	ID       string `json:"id" yaml:"id" validate:"required,element_id"`
	DataType string `json:"data_type,omitempty" yaml:"data_type,omitempty" validate:"omitempty,data_type"`
}

// EdgeDoc is the serialized form of an edge.
type EdgeDoc struct {
	ID             string `json:"id" yaml:"id" validate:"required,element_id"`
	Source         string `json:"source" yaml:"source" validate:"required,element_id"`
	SourceHandle   string `json:"source_handle,omitempty" yaml:"source_handle,omitempty" validate:"omitempty,element_id"`
	Target         string `json:"target" yaml:"target" validate:"required,element_id"`
	TargetHandle   string `json:"target_handle,omitempty" yaml:"target_handle,omitempty" validate:"omitempty,element_id"`
	ConnectionType string `json:"connection_type,omitempty" yaml:"connection_type,omitempty" validate:"omitempty,oneof=data control"`
	Priority       int    `json:"priority,omitempty" yaml:"priority,omitempty" validate:"min=0,max=100"`
	Breakpoint     bool   `json:"breakpoint,omitempty" yaml:"breakpoint,omitempty"`
}

// ToGraph validates the document and converts it to a core graph.
func (d *Document) ToGraph() (*graph.Graph, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	g := graph.New()
	for _, nd := range d.Nodes {
		node := &graph.Node{
			ID:       nd.ID,
			Kind:     graph.NodeKind(nd.Kind),
			Label:    nd.Label,
			Position: nd.Position,
			Config:   nd.Config,
			Inputs:   toPorts(nd.Inputs),
			Outputs:  toPorts(nd.Outputs),
		}
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
	}
	for _, ed := range d.Edges {
		edge := &graph.Edge{
			ID:           ed.ID,
			Source:       ed.Source,
			SourceHandle: ed.SourceHandle,
			Target:       ed.Target,
			TargetHandle: ed.TargetHandle,
			Data: graph.EdgeData{
				ConnectionType: graph.ConnectionType(ed.ConnectionType),
				Priority:       ed.Priority,
				Breakpoint:     ed.Breakpoint,
			},
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FromGraph converts a core graph back to its document form. Nodes
// are ordered by ID so saving the same graph twice produces the same
// bytes.
func FromGraph(name string, g *graph.Graph) *Document {
	doc := &Document{Name: name}
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := g.Nodes[id]
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:       n.ID,
			Kind:     string(n.Kind),
			Label:    n.Label,
			Position: n.Position,
			Config:   n.Config,
			Inputs:   fromPorts(n.Inputs),
			Outputs:  fromPorts(n.Outputs),
		})
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, EdgeDoc{
			ID:             e.ID,
			Source:         e.Source,
			SourceHandle:   e.SourceHandle,
			Target:         e.Target,
			TargetHandle:   e.TargetHandle,
			ConnectionType: string(e.Data.ConnectionType),
			Priority:       e.Data.Priority,
			Breakpoint:     e.Data.Breakpoint,
		})
	}
	return doc
}

func toPorts(docs []PortDoc) []graph.Port {
	var out []graph.Port
	for _, p := range docs {
		out = append(out, graph.Port{ID: p.ID, DataType: p.DataType})
	}
	return out
}

func fromPorts(ports []graph.Port) []PortDoc {
	var out []PortDoc
	for _, p := range ports {
		out = append(out, PortDoc{ID: p.ID, DataType: p.DataType})
	}
	return out
}
