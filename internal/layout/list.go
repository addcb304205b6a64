package layout

import "listeditor/internal/domain"

// ListSpacing is the horizontal distance between consecutive nodes
const ListSpacing = 200.0

// ListManager places nodes on one row, left to right, with fixed spacing
type ListManager struct {
	padding float64
}

// NewListManager creates a list strategy with the given left/top padding
func NewListManager(padding float64) *ListManager {
	return &ListManager{padding: padding}
}

// DefaultListManager creates a list strategy with zero padding
func DefaultListManager() *ListManager {
	return NewListManager(0)
}

// UpdatePositions computes a position for every node from input order alone.
// Stored positions are ignored.
func (m *ListManager) UpdatePositions(nodes []domain.Placement) (map[string]domain.Position, error) {
	positions := make(map[string]domain.Position, len(nodes))

	x := m.padding
	for i, n := range nodes {
		if i > 0 {
			x += ListSpacing
		}
		positions[n.ID] = domain.NewPosition(x, m.padding)
	}

	return positions, nil
}

// UpdateTargetPosition recomputes targetID and every node after it. The first
// recomputed node is anchored on its predecessor's stored position, which may
// be stale. Nodes before the target are absent from the result.
func (m *ListManager) UpdateTargetPosition(nodes []domain.Placement, targetID string) (map[string]domain.Position, error) {
	target := indexOf(nodes, targetID)
	if target == -1 {
		return nil, domain.NewNotFoundError("node %s not found", targetID)
	}

	positions := make(map[string]domain.Position, len(nodes)-target)
	for i := target; i < len(nodes); i++ {
		if i == 0 {
			positions[nodes[i].ID] = domain.NewPosition(m.padding, m.padding)
			continue
		}

		prevID := nodes[i-1].ID
		prev, ok := positions[prevID]
		if !ok {
			prev = nodes[i-1].Position
		}
		positions[nodes[i].ID] = domain.NewPosition(prev.X+ListSpacing, m.padding)
	}

	return positions, nil
}

func indexOf(nodes []domain.Placement, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
