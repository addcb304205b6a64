package layout

import (
	"fmt"

	"listeditor/internal/domain"
)

// Strategy names accepted by New
const (
	StrategyList = "list"
	StrategyGrid = "grid"
)

// Strategy is implemented by every position strategy in this package
type Strategy interface {
	UpdatePositions(nodes []domain.Placement) (map[string]domain.Position, error)
	UpdateTargetPosition(nodes []domain.Placement, targetID string) (map[string]domain.Position, error)
}

// Options configures New
type Options struct {
	Padding float64
	Columns int
}

// New builds a strategy by name. An empty name selects the list strategy.
func New(name string, opts Options) (Strategy, error) {
	switch name {
	case "", StrategyList:
		return NewListManager(opts.Padding), nil
	case StrategyGrid:
		return NewGridManager(opts.Padding, opts.Columns)
	default:
		return nil, fmt.Errorf("unknown layout strategy %q", name)
	}
}
