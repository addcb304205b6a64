// Package logical provides Manager, a generic ordered node store that
// delegates coordinate computation to a pluggable PositionManager.
//
// The manager is single-threaded: callers serialize access.
package logical

import "listeditor/internal/domain"

// PositionManager computes canvas coordinates for an ordered node sequence.
// Implementations are pure functions of their input and configuration.
type PositionManager interface {
	// UpdatePositions returns a position for every node.
	UpdatePositions(nodes []domain.Placement) (map[string]domain.Position, error)

	// UpdateTargetPosition returns positions for targetID and every node after
	// it. It fails with a *domain.NotFoundError if targetID is absent.
	UpdateTargetPosition(nodes []domain.Placement, targetID string) (map[string]domain.Position, error)
}

// Manager owns a node collection and a position strategy
type Manager[T any] struct {
	nodes     []domain.Node[T]
	positions PositionManager
}

// New creates a manager seeded with the given nodes
func New[T any](pm PositionManager, initial ...domain.Node[T]) *Manager[T] {
	nodes := make([]domain.Node[T], len(initial))
	copy(nodes, initial)
	return &Manager[T]{
		nodes:     nodes,
		positions: pm,
	}
}

// Nodes returns the live collection. Callers must not modify it; use
// SetNodes or SetTargetNode.
func (m *Manager[T]) Nodes() []domain.Node[T] {
	return m.nodes
}

// SetNodes replaces the whole collection
func (m *Manager[T]) SetNodes(nodes []domain.Node[T]) {
	m.nodes = nodes
}

// TargetNode returns the first node with the given id
func (m *Manager[T]) TargetNode(id string) (domain.Node[T], bool) {
	for _, n := range m.nodes {
		if n.ID == id {
			return n, true
		}
	}
	var zero domain.Node[T]
	return zero, false
}

// SetTargetNode replaces, in place, the first node whose id matches. It does
// nothing when no node matches.
func (m *Manager[T]) SetTargetNode(node domain.Node[T]) {
	for i := range m.nodes {
		if m.nodes[i].ID == node.ID {
			m.nodes[i] = node
			return
		}
	}
}

// UpdatePositions lays out the full collection. On failure the error is
// returned unchanged and no position is touched. Nodes the strategy leaves
// out keep their current position.
func (m *Manager[T]) UpdatePositions() error {
	positions, err := m.positions.UpdatePositions(domain.Placements(m.nodes))
	if err != nil {
		return err
	}

	m.apply(positions)
	return nil
}

// UpdateTargetPosition lays out the node with the given id and every node
// after it. Every position the strategy returns is applied.
func (m *Manager[T]) UpdateTargetPosition(id string) error {
	positions, err := m.positions.UpdateTargetPosition(domain.Placements(m.nodes), id)
	if err != nil {
		return err
	}

	m.apply(positions)
	return nil
}

// apply writes positions into a fresh collection so slices previously
// returned by Nodes keep their old values
func (m *Manager[T]) apply(positions map[string]domain.Position) {
	next := make([]domain.Node[T], len(m.nodes))
	for i, n := range m.nodes {
		if pos, ok := positions[n.ID]; ok {
			n.Position = pos
		}
		next[i] = n
	}
	m.nodes = next
}
