// Package validation implements the structural checks behind the flow
// editor: single-connection validation, whole-flow validation, and the
// asynchronous execution-readiness pass.
//
// Expected structural findings are returned as values, never as errors
// or panics: a Result that blocks an operation carries HasError, a
// Result the user may override carries HasWarning.
package validation

import "fmt"

// Result is the outcome of validating a single connection or node.
type Result struct {
	IsValid    bool   `json:"is_valid"`
	HasError   bool   `json:"has_error"`
	HasWarning bool   `json:"has_warning"`
	Message    string `json:"message,omitempty"`
}

// OK is the passing result.
func OK() Result {
	return Result{IsValid: true}
}

// Errorf builds a blocking result. Errors always refuse the operation.
func Errorf(format string, args ...interface{}) Result {
	return Result{HasError: true, Message: fmt.Sprintf(format, args...)}
}

// Warningf builds a non-blocking result: the operation is surfaced to
// the user but still permitted, and the graph stays valid.
func Warningf(format string, args ...interface{}) Result {
	return Result{IsValid: true, HasWarning: true, Message: fmt.Sprintf(format, args...)}
}

// FlowResult aggregates every finding of a whole-graph validation.
// All checks run; nothing short-circuits, so the user sees the full
// picture at once.
type FlowResult struct {
	IsValid     bool              `json:"is_valid"`
	HasErrors   bool              `json:"has_errors"`
	HasWarnings bool              `json:"has_warnings"`
	Errors      []string          `json:"errors,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
	NodeResults map[string]Result `json:"node_results,omitempty"`
	EdgeResults map[string]Result `json:"edge_results,omitempty"`
}

func newFlowResult() *FlowResult {
	return &FlowResult{
		IsValid:     true,
		NodeResults: make(map[string]Result),
		EdgeResults: make(map[string]Result),
	}
}

func (r *FlowResult) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.HasErrors = true
	r.IsValid = false
}

func (r *FlowResult) addWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	r.HasWarnings = true
}

// mergeNode records a per-node result and promotes its severity to
// the graph level. A node can accumulate several findings (e.g. an
// unconnected destination is also unreachable); they are combined,
// not overwritten.
func (r *FlowResult) mergeNode(nodeID string, res Result) {
	if res.HasError {
		r.addError("node %s: %s", nodeID, res.Message)
	} else if res.HasWarning {
		r.addWarning("node %s: %s", nodeID, res.Message)
	}
	if prev, ok := r.NodeResults[nodeID]; ok {
		res = Result{
			IsValid:    !prev.HasError && !res.HasError,
			HasError:   prev.HasError || res.HasError,
			HasWarning: prev.HasWarning || res.HasWarning,
			Message:    prev.Message + "; " + res.Message,
		}
	}
	r.NodeResults[nodeID] = res
}

// mergeEdge records a per-edge result and promotes its severity to
// the graph level.
func (r *FlowResult) mergeEdge(edgeID string, res Result) {
	r.EdgeResults[edgeID] = res
	if res.HasError {
		r.addError("edge %s: %s", edgeID, res.Message)
	} else if res.HasWarning {
		r.addWarning("edge %s: %s", edgeID, res.Message)
	}
}
