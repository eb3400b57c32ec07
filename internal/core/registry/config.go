package registry

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// fileConfig is the YAML shape for registry overrides:
//
//	kinds:
//	  destination:
//	    inputs: [in]
//	    max_input_connections: 1
type fileConfig struct {
	Kinds map[string]KindSpec `yaml:"kinds"`
}

// FromYAML returns the default registry with the overrides in data
// applied on top. Overriding a kind the default registry does not
// know is rejected: the kind set is closed.
func FromYAML(data []byte) (*Registry, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	reg := Default()
	for name, spec := range cfg.Kinds {
		kind := graph.NodeKind(name)
		if !reg.Known(kind) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
		}
		if !spec.HasInputs() && !spec.HasOutputs() {
			return nil, fmt.Errorf("%w: kind %q declares no ports", ErrInvalidSpec, name)
		}
		reg.Override(kind, spec)
	}
	return reg, nil
}
