package linkedlist

import (
	"fmt"

	"listeditor/internal/domain"
)

// NodeAt returns the real node at index, where index 0 is the first node
// after HEAD
func (l *List) NodeAt(index int) (domain.ListNode, error) {
	nodes := l.Nodes()
	if index < 0 || index >= len(nodes)-1 {
		return domain.ListNode{}, invalidIndex()
	}
	return nodes[index+1], nil
}

// NodeByID returns the node with the given id, HEAD included
func (l *List) NodeByID(id string) (domain.ListNode, bool) {
	return l.manager.TargetNode(id)
}

// NodeByValue returns the first real node carrying value
func (l *List) NodeByValue(value string) (domain.ListNode, bool) {
	for _, n := range l.Nodes()[1:] {
		if n.Value.Value == value {
			return n, true
		}
	}
	return domain.ListNode{}, false
}

// IndexOf returns the real-node index of id, or -1. HEAD is not a real node.
func (l *List) IndexOf(id string) int {
	for i, n := range l.Nodes()[1:] {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks the sentinel and chain invariants: HEAD at index 0 and
// nowhere else, unique ids, adjacency following collection order, both adjacency encodings
// agreeing, and the last node pointing at TAIL.
func (l *List) Validate() error {
	return validateChain(l.Nodes())
}

func validateChain(nodes []domain.ListNode) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%w: list has no HEAD", domain.ErrBrokenChain)
	}
	if !nodes[0].Value.IsHead() {
		return fmt.Errorf("%w: node 0 is %q, not HEAD", domain.ErrBrokenChain, nodes[0].Value.Value)
	}

	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", domain.ErrBrokenChain, n.ID)
		}
		seen[n.ID] = struct{}{}

		if i > 0 && n.Value.IsHead() {
			return fmt.Errorf("%w: node %d (%s) carries the HEAD value", domain.ErrBrokenChain, i, n.ID)
		}

		if len(n.ConnectedNodesIDs) != 1 {
			return fmt.Errorf("%w: node %s has %d successors", domain.ErrBrokenChain, n.ID, len(n.ConnectedNodesIDs))
		}
		if want := successorOf(nodes, i); n.Next() != want {
			return fmt.Errorf("%w: node %s points at %s, want %s", domain.ErrBrokenChain, n.ID, n.Next(), want)
		}
		if n.Value.NextNodeID != n.Next() {
			return fmt.Errorf("%w: node %s nextNodeId %s disagrees with adjacency %s",
				domain.ErrBrokenChain, n.ID, n.Value.NextNodeID, n.Next())
		}
	}
	return nil
}
