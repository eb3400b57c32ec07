// Package graph provides edge definitions
package graph

// ConnectionType classifies what an edge carries.
type ConnectionType string

const (
	// ConnectionData is the default record-carrying connection
	ConnectionData ConnectionType = "data"
	// ConnectionControl carries control signals only
	ConnectionControl ConnectionType = "control"
)

// EdgeData holds the user-editable properties of a connection.
type EdgeData struct {
	ConnectionType ConnectionType `json:"connection_type,omitempty"`
	Priority       int            `json:"priority,omitempty"`
	Breakpoint     bool           `json:"breakpoint,omitempty"`
}

// Edge represents a directed connection from an output port to an
// input port
// PRINCIPLES:
// - KISS: Simple edge representation
// - SRP: Only responsible for edge data
type Edge struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"` // Source node ID
	SourceHandle string   `json:"source_handle,omitempty"`
	Target       string   `json:"target"` // Target node ID
	TargetHandle string   `json:"target_handle,omitempty"`
	Data         EdgeData `json:"data"`
}

// Validate ensures edge integrity. Self-loops are deliberately not
// rejected here: the cycle check treats them as a 1-node cycle.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if e.Source == "" {
		return ErrInvalidSource
	}
	if e.Target == "" {
		return ErrInvalidTarget
	}
	if e.Data.ConnectionType == "" {
		e.Data.ConnectionType = ConnectionData
	}
	return nil
}

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	if e == nil {
		return nil
	}
	out := *e
	return &out
}
