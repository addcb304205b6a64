package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"listeditor/internal/domain"
)

var (
	// operationsTotal counts list operations.
	// Labels: operation, result (ok, invalid, not_found, error)
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "listeditor",
		Name:      "operations_total",
		Help:      "List operations by outcome",
	}, []string{"operation", "result"})

	// listLength tracks the number of real nodes per session.
	// Labels: session
	listLength = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "listeditor",
		Name:      "list_length",
		Help:      "Nodes in each list, HEAD excluded",
	}, []string{"session"})
)

// Operation names used as metric labels and in events
const (
	OpCreate           = "create"
	OpDelete           = "delete"
	OpAddAtStart       = "add_at_start"
	OpAddAtEnd         = "add_at_end"
	OpAddAtPosition    = "add_at_position"
	OpRemoveAtStart    = "remove_at_start"
	OpRemoveAtEnd      = "remove_at_end"
	OpRemoveAtPosition = "remove_at_position"
	OpLoad             = "load"
	OpEmphasize        = "emphasize"
	OpEmphasizeEdge    = "emphasize_edge"
	OpMoveNode         = "move_node"
	OpRelayout         = "relayout"
	OpSave             = "save"
	OpRestore          = "restore"
)

func recordOperation(operation string, err error) {
	operationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	var validation *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
