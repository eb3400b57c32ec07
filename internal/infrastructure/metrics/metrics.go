// Package metrics exposes Prometheus counters and gauges for editor
// activity. The embedding application decides whether and where to
// serve them; the engine only increments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowcanvas_mutations_total",
		Help: "Total number of graph mutations, labelled by action.",
	}, []string{"action"})

	ConnectionChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowcanvas_connection_checks_total",
		Help: "Total number of connection validations, labelled by outcome.",
	}, []string{"outcome"})

	FlowValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowcanvas_flow_validations_total",
		Help: "Total number of whole-flow validations, labelled by outcome.",
	}, []string{"outcome"})

	UndoTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flowcanvas_undo_total",
		Help: "Total number of undo operations applied.",
	})

	RedoTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flowcanvas_redo_total",
		Help: "Total number of redo operations applied.",
	})

	HistoryDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flowcanvas_history_depth",
		Help: "Current number of retained history entries.",
	})
)

// Outcome labels for validation counters.
const (
	OutcomeOK      = "ok"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)
