package domain

const (
	// HeadValue marks the sentinel node stored at index 0 of every list
	HeadValue = "HEAD"
	// TailMarker is the adjacency target of the last node. It is not a node.
	TailMarker = "TAIL"
)

// ListValue is the payload of a linked list node.
//
// NextNodeID mirrors the node's first adjacency entry and exists for display;
// Node.ConnectedNodesIDs is authoritative.
type ListValue struct {
	Value      string `json:"value"`
	NextNodeID string `json:"nextNodeId"`
}

// IsHead reports whether the payload is the HEAD sentinel's
func (v ListValue) IsHead() bool {
	return v.Value == HeadValue
}

// ListNode is a node of a linked list
type ListNode = Node[ListValue]

// NewListNode builds a list node whose derived NextNodeID agrees with its
// adjacency
func NewListNode(id, value, next string) ListNode {
	return NewNode(id, Position{}, ListValue{Value: value, NextNodeID: next}, next)
}

// Link points the node at next, keeping both adjacency encodings in sync
func Link(n ListNode, next string) ListNode {
	n.UpdateValue(ListValue{Value: n.Value.Value, NextNodeID: next})
	n.UpdateConnectedNodesIDs([]string{next})
	return n
}
