// Package registry describes the port sets and connection limits of
// each node kind. Kinds are a closed set: looking up a kind the
// registry does not know is a configuration error, never a silent
// default.
package registry

import (
	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// KindSpec declares the ports and connection-count limits of one
// node kind. A nil limit means unbounded.
type KindSpec struct {
	Inputs               []string `yaml:"inputs"`
	Outputs              []string `yaml:"outputs"`
	MaxInputConnections  *int     `yaml:"max_input_connections"`
	MaxOutputConnections *int     `yaml:"max_output_connections"`
}

// HasInputs reports whether the kind can accept connections.
func (s KindSpec) HasInputs() bool { return len(s.Inputs) > 0 }

// HasOutputs reports whether the kind can originate connections.
func (s KindSpec) HasOutputs() bool { return len(s.Outputs) > 0 }

// Registry maps node kinds to their specs.
type Registry struct {
	kinds map[graph.NodeKind]KindSpec
}

// Default returns the built-in registry for the four core kinds.
func Default() *Registry {
	return &Registry{kinds: map[graph.NodeKind]KindSpec{
		graph.KindSource: {
			Outputs: []string{"out"},
		},
		graph.KindDestination: {
			Inputs: []string{"in"},
		},
		graph.KindTransformation: {
			Inputs:  []string{"in"},
			Outputs: []string{"out"},
		},
		graph.KindFilter: {
			Inputs:  []string{"in"},
			Outputs: []string{"out"},
		},
	}}
}

// Describe looks up the spec for a kind. Unknown kinds are an error.
func (r *Registry) Describe(kind graph.NodeKind) (KindSpec, error) {
	spec, ok := r.kinds[kind]
	if !ok {
		return KindSpec{}, ErrUnknownKind
	}
	return spec, nil
}

// Known reports whether the registry describes the given kind.
func (r *Registry) Known(kind graph.NodeKind) bool {
	_, ok := r.kinds[kind]
	return ok
}

// Override replaces the spec for a kind. Used by embedders that need
// non-default limits (e.g. a destination accepting a single input).
func (r *Registry) Override(kind graph.NodeKind, spec KindSpec) {
	r.kinds[kind] = spec
}

// DefaultPorts builds the declared port list for a new node instance
// of the given kind. Instance-level data types can be set afterwards.
func (r *Registry) DefaultPorts(kind graph.NodeKind) (inputs, outputs []graph.Port, err error) {
	spec, err := r.Describe(kind)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range spec.Inputs {
		inputs = append(inputs, graph.Port{ID: id})
	}
	for _, id := range spec.Outputs {
		outputs = append(outputs, graph.Port{ID: id})
	}
	return inputs, outputs, nil
}
