// Package graph provides node definitions
package graph

// NodeKind identifies the role a node plays in an integration flow.
type NodeKind string

const (
	// KindSource produces records from an external system
	KindSource NodeKind = "source"
	// KindDestination delivers records to an external system
	KindDestination NodeKind = "destination"
	// KindTransformation reshapes records in flight
	KindTransformation NodeKind = "transformation"
	// KindFilter drops records that fail a predicate
	KindFilter NodeKind = "filter"
)

// DataTypeAny is the wildcard port data type. Ports with no declared
// type are treated as DataTypeAny.
const DataTypeAny = "any"

// Port is a named, typed attachment point on a node.
type Port struct {
	ID       string `json:"id"`
	DataType string `json:"data_type,omitempty"` // empty means "any"
}

// Type returns the declared data type, defaulting to DataTypeAny.
func (p Port) Type() string {
	if p.DataType == "" {
		return DataTypeAny
	}
	return p.DataType
}

// Position is the canvas placement of a node. The engine never
// interprets it; it only survives snapshots.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a vertex in the flow graph
// PRINCIPLES:
// - KISS: Simple node representation
// - SRP: Only responsible for node data
type Node struct {
	ID       string                 `json:"id"`
	Kind     NodeKind               `json:"kind"`
	Label    string                 `json:"label"`
	Position Position               `json:"position"`
	Config   map[string]interface{} `json:"config,omitempty"`
	Inputs   []Port                 `json:"inputs,omitempty"`
	Outputs  []Port                 `json:"outputs,omitempty"`
}

// Validate ensures node integrity
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if n.Kind == "" {
		return ErrInvalidNodeKind
	}
	return nil
}

// InputType resolves the declared data type of an input port.
// Unknown or untyped ports resolve to DataTypeAny.
func (n *Node) InputType(portID string) string {
	return portType(n.Inputs, portID)
}

// OutputType resolves the declared data type of an output port.
func (n *Node) OutputType(portID string) string {
	return portType(n.Outputs, portID)
}

func portType(ports []Port, portID string) string {
	for _, p := range ports {
		if p.ID == portID {
			return p.Type()
		}
	}
	return DataTypeAny
}

// Clone returns a deep copy of the node. Config is copied through
// nested maps and slices so no snapshot shares mutable state with the
// live node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Config != nil {
		out.Config = cloneConfigMap(n.Config)
	}
	out.Inputs = append([]Port(nil), n.Inputs...)
	out.Outputs = append([]Port(nil), n.Outputs...)
	return &out
}

func cloneConfigMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneConfigValue(v)
	}
	return out
}

func cloneConfigValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return cloneConfigMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneConfigValue(item)
		}
		return out
	default:
		// Scalars (and anything else) are copied by value; config is
		// expected to hold JSON-shaped data only.
		return v
	}
}
