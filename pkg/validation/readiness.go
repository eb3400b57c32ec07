package validation

import (
	"context"
	"sync"

	coregraph "github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/registry"
)

// NodeChecker is the optional per-node readiness capability supplied
// by the embedding layer. It reports whether a node's configuration
// is complete enough to run. Checkers receive a read-only node and
// must not mutate shared graph state.
type NodeChecker func(ctx context.Context, node *coregraph.Node) Result

// ValidateForExecution is the deeper pass run before a flow may
// execute. It first runs ValidateFlow and fails fast on structural
// errors. Otherwise every node with a registered checker is validated
// concurrently; all outcomes are awaited and merged. A checker that
// returns an error result, or panics, contributes a per-node error
// without hiding the other nodes' results.
//
// The graph is not version-stamped: a structural edit made while this
// pass is in flight is not reflected in its result, so callers should
// treat the result as advisory if the graph changed meanwhile.
func ValidateForExecution(ctx context.Context, g *coregraph.Graph, reg *registry.Registry, checkers map[string]NodeChecker) *FlowResult {
	result := ValidateFlow(g, reg)
	if !result.IsValid {
		return result
	}

	type outcome struct {
		nodeID string
		res    Result
	}

	var wg sync.WaitGroup
	outcomes := make(chan outcome, len(g.Nodes))

	for id, n := range g.Nodes {
		checker, ok := checkers[id]
		if !ok || checker == nil {
			continue
		}
		wg.Add(1)
		go func(id string, n *coregraph.Node) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes <- outcome{id, Errorf("readiness check for %q panicked: %v", label(n), r)}
				}
			}()
			outcomes <- outcome{id, checker(ctx, n)}
		}(id, n)
	}

	wg.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.res.HasError || o.res.HasWarning {
			result.mergeNode(o.nodeID, o.res)
		}
	}
	return result
}

// CheckerFromError adapts a plain error-returning configuration check
// into a NodeChecker: nil maps to OK, anything else to a node error.
func CheckerFromError(check func(ctx context.Context, node *coregraph.Node) error) NodeChecker {
	return func(ctx context.Context, node *coregraph.Node) Result {
		if err := check(ctx, node); err != nil {
			return Errorf("node %q is not ready: %v", label(node), err)
		}
		return OK()
	}
}
