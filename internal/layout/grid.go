package layout

import (
	"fmt"

	"listeditor/internal/domain"
)

// GridSpacing is the distance between grid cells on both axes
const GridSpacing = 200.0

// GridManager wraps nodes row-major into a fixed number of columns
type GridManager struct {
	padding float64
	columns int
}

// NewGridManager creates a grid strategy. columns must be positive.
func NewGridManager(padding float64, columns int) (*GridManager, error) {
	if columns <= 0 {
		return nil, fmt.Errorf("grid columns must be positive, got %d", columns)
	}
	return &GridManager{padding: padding, columns: columns}, nil
}

// UpdatePositions places every node by its index
func (m *GridManager) UpdatePositions(nodes []domain.Placement) (map[string]domain.Position, error) {
	positions := make(map[string]domain.Position, len(nodes))
	for i, n := range nodes {
		positions[n.ID] = m.cell(i)
	}
	return positions, nil
}

// UpdateTargetPosition places targetID and the nodes after it. Cells depend
// only on index, so stored positions are never consulted.
func (m *GridManager) UpdateTargetPosition(nodes []domain.Placement, targetID string) (map[string]domain.Position, error) {
	target := indexOf(nodes, targetID)
	if target == -1 {
		return nil, domain.NewNotFoundError("node %s not found", targetID)
	}

	positions := make(map[string]domain.Position, len(nodes)-target)
	for i := target; i < len(nodes); i++ {
		positions[nodes[i].ID] = m.cell(i)
	}
	return positions, nil
}

func (m *GridManager) cell(i int) domain.Position {
	col := i % m.columns
	row := i / m.columns
	return domain.NewPosition(
		m.padding+float64(col)*GridSpacing,
		m.padding+float64(row)*GridSpacing,
	)
}
