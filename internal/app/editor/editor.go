// Package editor exposes the mutation entry points of the flow
// engine: everything the canvas layer may do to a graph goes through
// here, so every structural change is validated first and recorded in
// edit history exactly once.
package editor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/history"
	"github.com/flowcanvas/flowcanvas/internal/core/registry"
	"github.com/flowcanvas/flowcanvas/internal/infrastructure/metrics"
	"github.com/flowcanvas/flowcanvas/pkg/validation"
)

// Editor owns a live graph, the registry that governs it, and the
// edit history driving undo/redo. It is single-threaded by design:
// all mutations happen in direct response to one user action at a
// time (see ValidateForExecution for the only asynchronous pass).
type Editor struct {
	graph *graph.Graph
	reg   *registry.Registry
	hist  *history.Log
}

// Config holds editor settings.
type Config struct {
	Registry     *registry.Registry // nil means registry.Default()
	Initial      *graph.Graph       // nil means empty graph
	HistoryLimit int                // 0 means history.DefaultLimit
}

// New creates an editor over an empty graph with default settings.
func New() *Editor {
	return NewWithConfig(Config{})
}

// NewWithConfig creates an editor with explicit settings.
func NewWithConfig(cfg Config) *Editor {
	if cfg.Registry == nil {
		cfg.Registry = registry.Default()
	}
	g := cfg.Initial
	if g == nil {
		g = graph.New()
	} else {
		g = g.Clone()
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = history.DefaultLimit
	}
	return &Editor{
		graph: g,
		reg:   cfg.Registry,
		hist:  history.NewWithLimit(g, limit),
	}
}

// Graph returns a read-only view of the live graph. Callers must not
// mutate it; all edits go through the editor.
func (e *Editor) Graph() *graph.Graph { return e.graph }

// Registry returns the registry governing this editor.
func (e *Editor) Registry() *registry.Registry { return e.reg }

// AddNode creates a node of the given kind at a canvas position and
// records the edit. Ports are populated from the registry; the ID is
// generated when empty.
func (e *Editor) AddNode(kind graph.NodeKind, label string, pos graph.Position) (*graph.Node, error) {
	inputs, outputs, err := e.reg.DefaultPorts(kind)
	if err != nil {
		return nil, fmt.Errorf("cannot add node of kind %q: %w", kind, err)
	}
	node := &graph.Node{
		ID:       uuid.New().String(),
		Kind:     kind,
		Label:    label,
		Position: pos,
		Config:   map[string]interface{}{},
		Inputs:   inputs,
		Outputs:  outputs,
	}
	if err := e.graph.AddNode(node); err != nil {
		return nil, err
	}
	e.record("add node", fmt.Sprintf("Add %s", nodeLabel(node)))
	return node, nil
}

// AddEdge validates and adds a connection. An error result refuses
// the edge and is returned alongside ErrConnectionRejected; a warning
// result permits it but is surfaced to the caller.
func (e *Editor) AddEdge(edge *graph.Edge) (validation.Result, error) {
	if edge == nil {
		return validation.Result{}, graph.ErrNilEdge
	}
	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}

	res := validation.ValidateConnection(edge, e.graph, e.reg)
	switch {
	case res.HasError:
		metrics.ConnectionChecks.WithLabelValues(metrics.OutcomeError).Inc()
		return res, fmt.Errorf("%w: %s", ErrConnectionRejected, res.Message)
	case res.HasWarning:
		metrics.ConnectionChecks.WithLabelValues(metrics.OutcomeWarning).Inc()
	default:
		metrics.ConnectionChecks.WithLabelValues(metrics.OutcomeOK).Inc()
	}

	if err := e.graph.AddEdge(edge); err != nil {
		return res, err
	}
	e.record("add edge", fmt.Sprintf("Connect %s to %s", edge.Source, edge.Target))
	return res, nil
}

// RemoveElements removes the given nodes and edges in one edit.
// Removing a node cascades removal of every edge touching it. Unknown
// IDs are an error and nothing is recorded.
func (e *Editor) RemoveElements(nodeIDs, edgeIDs []string) error {
	if len(nodeIDs) == 0 && len(edgeIDs) == 0 {
		return nil
	}
	for _, id := range edgeIDs {
		if e.graph.Edge(id) == nil {
			return fmt.Errorf("%w: %s", graph.ErrEdgeNotFound, id)
		}
	}
	for _, id := range nodeIDs {
		if e.graph.Node(id) == nil {
			return fmt.Errorf("%w: %s", graph.ErrNodeNotFound, id)
		}
	}
	for _, id := range edgeIDs {
		// Edge may already be gone via a node cascade in this batch.
		_ = e.graph.RemoveEdge(id)
	}
	for _, id := range nodeIDs {
		_ = e.graph.RemoveNode(id)
	}
	e.record("remove elements", fmt.Sprintf("Remove %d element(s)", len(nodeIDs)+len(edgeIDs)))
	return nil
}

// SetConnectionType changes an edge's connection type and records it.
func (e *Editor) SetConnectionType(edgeID string, ct graph.ConnectionType) error {
	edge := e.graph.Edge(edgeID)
	if edge == nil {
		return fmt.Errorf("%w: %s", graph.ErrEdgeNotFound, edgeID)
	}
	edge.Data.ConnectionType = ct
	e.record("set connection type", fmt.Sprintf("Set connection type to %s", ct))
	return nil
}

// SetPriority changes an edge's priority and records it.
func (e *Editor) SetPriority(edgeID string, priority int) error {
	edge := e.graph.Edge(edgeID)
	if edge == nil {
		return fmt.Errorf("%w: %s", graph.ErrEdgeNotFound, edgeID)
	}
	edge.Data.Priority = priority
	e.record("set priority", fmt.Sprintf("Set priority to %d", priority))
	return nil
}

// ToggleBreakpoint flips an edge's breakpoint flag, records the edit,
// and returns the new state.
func (e *Editor) ToggleBreakpoint(edgeID string) (bool, error) {
	edge := e.graph.Edge(edgeID)
	if edge == nil {
		return false, fmt.Errorf("%w: %s", graph.ErrEdgeNotFound, edgeID)
	}
	edge.Data.Breakpoint = !edge.Data.Breakpoint
	state := "off"
	if edge.Data.Breakpoint {
		state = "on"
	}
	e.record("toggle breakpoint", fmt.Sprintf("Breakpoint %s", state))
	return edge.Data.Breakpoint, nil
}

// SetPortType declares the data type of one port on a node instance
// and records the edit.
func (e *Editor) SetPortType(nodeID, portID, dataType string, output bool) error {
	node := e.graph.Node(nodeID)
	if node == nil {
		return fmt.Errorf("%w: %s", graph.ErrNodeNotFound, nodeID)
	}
	ports := node.Inputs
	if output {
		ports = node.Outputs
	}
	for i := range ports {
		if ports[i].ID == portID {
			ports[i].DataType = dataType
			e.record("set port type", fmt.Sprintf("Set %s type to %s", portID, dataType))
			return nil
		}
	}
	return fmt.Errorf("%w: node %s has no port %s", ErrUnknownPort, nodeID, portID)
}

// CanUndo reports whether undo is available.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether redo is available.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// Undo reverts the last recorded edit and returns its action label.
// On a history error the live graph is left untouched.
func (e *Editor) Undo() (string, error) {
	g, action, err := e.hist.Undo()
	if err != nil {
		return "", err
	}
	e.graph = g
	metrics.UndoTotal.Inc()
	return action, nil
}

// Redo reapplies the next edit and returns its action label.
func (e *Editor) Redo() (string, error) {
	g, action, err := e.hist.Redo()
	if err != nil {
		return "", err
	}
	e.graph = g
	metrics.RedoTotal.Inc()
	return action, nil
}

// Validate runs whole-flow validation on the live graph.
func (e *Editor) Validate() *validation.FlowResult {
	res := validation.ValidateFlow(e.graph, e.reg)
	outcome := metrics.OutcomeOK
	switch {
	case res.HasErrors:
		outcome = metrics.OutcomeError
	case res.HasWarnings:
		outcome = metrics.OutcomeWarning
	}
	metrics.FlowValidations.WithLabelValues(outcome).Inc()
	return res
}

// ValidateForExecution runs the asynchronous readiness pass against a
// snapshot of the live graph. A structural edit made while the pass
// is in flight is not reflected in its result.
func (e *Editor) ValidateForExecution(ctx context.Context, checkers map[string]validation.NodeChecker) *validation.FlowResult {
	return validation.ValidateForExecution(ctx, e.graph.Clone(), e.reg, checkers)
}

func (e *Editor) record(action, label string) {
	// Record never fails for a live graph; the guard protects against
	// a nil node map slipping in through Config.Initial.
	_ = e.hist.Record(e.graph, label)
	metrics.MutationsTotal.WithLabelValues(action).Inc()
	metrics.HistoryDepth.Set(float64(e.hist.Len()))
}

func nodeLabel(n *graph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return string(n.Kind)
}
