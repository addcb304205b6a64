package domain

// Node is a uniquely identified, positioned entity carrying a payload and its
// outgoing adjacency. Nodes are stored by value; "updating" a node means
// building a new value and replacing its slot in the owning collection.
type Node[T any] struct {
	ID                string   `json:"id"`
	Position          Position `json:"position"`
	Value             T        `json:"value"`
	ConnectedNodesIDs []string `json:"connectedNodesIds"`
}

// NewNode creates a node with the given adjacency
func NewNode[T any](id string, pos Position, value T, connected ...string) Node[T] {
	n := Node[T]{
		ID:       id,
		Position: pos,
		Value:    value,
	}
	n.UpdateConnectedNodesIDs(connected)
	return n
}

// UpdateValue replaces the payload
func (n *Node[T]) UpdateValue(value T) {
	n.Value = value
}

// UpdateConnectedNodesIDs replaces the adjacency list. The slice is copied so
// two nodes never share a backing array.
func (n *Node[T]) UpdateConnectedNodesIDs(ids []string) {
	n.ConnectedNodesIDs = append(make([]string, 0, len(ids)), ids...)
}

// Next returns the first adjacency entry, or "" when the node is detached
func (n Node[T]) Next() string {
	if len(n.ConnectedNodesIDs) == 0 {
		return ""
	}
	return n.ConnectedNodesIDs[0]
}

// Placement returns the payload-free view consumed by position strategies
func (n Node[T]) Placement() Placement {
	return Placement{ID: n.ID, Position: n.Position}
}

// Placements projects a node sequence onto its placements, preserving order
func Placements[T any](nodes []Node[T]) []Placement {
	out := make([]Placement, len(nodes))
	for i, n := range nodes {
		out[i] = n.Placement()
	}
	return out
}
