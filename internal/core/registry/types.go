package registry

import "github.com/flowcanvas/flowcanvas/internal/core/graph"

// Compatible reports whether a source port data type may connect to
// a target port data type. The wildcard type accepts, and is accepted
// by, everything; all other types match only themselves.
// Pure function over a fixed rule, no side effects.
func Compatible(sourceType, targetType string) bool {
	if sourceType == "" {
		sourceType = graph.DataTypeAny
	}
	if targetType == "" {
		targetType = graph.DataTypeAny
	}
	if sourceType == graph.DataTypeAny || targetType == graph.DataTypeAny {
		return true
	}
	return sourceType == targetType
}
