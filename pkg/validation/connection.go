package validation

import (
	coregraph "github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/registry"
)

// ValidateConnection checks one candidate edge against the current
// graph. Error checks short-circuit in a fixed order, so the user
// always sees the most fundamental problem first:
//
//  1. both endpoint nodes exist
//  2. both node kinds are registered and can connect in this direction
//  3. the source output type is compatible with the target input type
//  4. the source node has outgoing capacity left (warning)
//  5. the target node has incoming capacity left (warning)
//  6. accepting the edge would not close a cycle
//
// A result with HasError must block the edge. HasWarning alone means
// the caller may still add it but should surface the message. The
// cycle check runs even when a capacity warning was already found: a
// cycle is always an error and an edge must never enter the graph on
// the strength of a mere warning. Pure predicate, no side effects.
func ValidateConnection(candidate *coregraph.Edge, g *coregraph.Graph, reg *registry.Registry) Result {
	if candidate == nil {
		return Errorf("no connection proposed")
	}

	source := g.Node(candidate.Source)
	target := g.Node(candidate.Target)
	if source == nil || target == nil {
		return Errorf("source or target node not found")
	}

	sourceSpec, err := reg.Describe(source.Kind)
	if err != nil {
		return Errorf("node kind %q is not registered", source.Kind)
	}
	targetSpec, err := reg.Describe(target.Kind)
	if err != nil {
		return Errorf("node kind %q is not registered", target.Kind)
	}
	if !sourceSpec.HasOutputs() {
		return Errorf("nodes of kind %q cannot originate connections", source.Kind)
	}
	if !targetSpec.HasInputs() {
		return Errorf("nodes of kind %q cannot accept connections", target.Kind)
	}

	outType := source.OutputType(candidate.SourceHandle)
	inType := target.InputType(candidate.TargetHandle)
	if !registry.Compatible(outType, inType) {
		return Errorf("output type %q is not compatible with input type %q", outType, inType)
	}

	// Capacity breaches are warnings, not hard errors. An existing
	// edge with the candidate's ID is excluded from the count so that
	// re-validating a connection in place never warns against itself.
	var warning *Result
	if max := sourceSpec.MaxOutputConnections; max != nil {
		if g.OutDegree(source.ID, candidate.ID) >= *max {
			w := Warningf("node %q already has the maximum of %d outgoing connections", source.ID, *max)
			warning = &w
		}
	}
	if warning == nil {
		if max := targetSpec.MaxInputConnections; max != nil {
			if g.InDegree(target.ID, candidate.ID) >= *max {
				w := Warningf("node %q already has the maximum of %d incoming connections", target.ID, *max)
				warning = &w
			}
		}
	}

	if wouldCycle(candidate, g) {
		return Errorf("connection would create a cycle")
	}
	if warning != nil {
		return *warning
	}
	return OK()
}
